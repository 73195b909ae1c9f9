package models

// Strategy is one identity posture tried against yt-dlp.
type Strategy struct {
	Name                string
	ExtraArgs           ArgList
	ExcludesCredentials bool
}

// InvocationResult holds the captured output of a finished subprocess.
type InvocationResult struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}
