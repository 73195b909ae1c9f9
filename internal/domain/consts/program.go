package consts

// Defaults
const (
	DefaultPort       = "3000"
	DefaultCookieFile = "cookies.txt"
	DefaultStaticDir  = "dist"
	IndexFile         = "index.html"
)

// Permissions
const (
	PermsCookieFile = 0o600
)
