package models

import "fmt"

// notStamped substitutes for build fields the linker left empty, so a dev
// build still prints a complete banner.
const notStamped = "N/A"

// AppBuildInfo is the build metadata stamped into a binary with -ldflags.
// Both the draft service and the register CLI print it at startup; support
// asks for that banner first when a register misbehaves.
type AppBuildInfo struct {
	buildVersion string
	buildDate    string
	buildCommit  string
}

// NewAppBuildInfo normalizes the stamped values: anything the linker left
// blank becomes "N/A".
func NewAppBuildInfo(buildVersion, buildDate, buildCommit string) AppBuildInfo {
	return AppBuildInfo{
		buildVersion: orNotStamped(buildVersion),
		buildDate:    orNotStamped(buildDate),
		buildCommit:  orNotStamped(buildCommit),
	}
}

func orNotStamped(value string) string {
	if value == "" {
		return notStamped
	}
	return value
}

// BuildVersion reports the stamped semantic version.
func (a AppBuildInfo) BuildVersion() string {
	return a.buildVersion
}

// BuildDate reports the stamped build timestamp.
func (a AppBuildInfo) BuildDate() string {
	return a.buildDate
}

// BuildCommit reports the stamped source commit.
func (a AppBuildInfo) BuildCommit() string {
	return a.buildCommit
}

// String renders the startup banner both binaries print.
func (a AppBuildInfo) String() string {
	return fmt.Sprintf("Build version: %s\nBuild date: %s\nBuild commit: %s",
		a.buildVersion, a.buildDate, a.buildCommit)
}
