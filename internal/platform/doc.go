package platform

// Package platform contains OS integration and external tooling glue:
// download directory helpers, free space checks, opening folders in the
// system file manager, yt-dlp bootstrapping and playlist expansion.
