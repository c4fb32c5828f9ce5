package version

// Version is overridden at build time with -ldflags "-X .../pkg/version.Version=v1.2.3".
var Version = "v0.1.0"
