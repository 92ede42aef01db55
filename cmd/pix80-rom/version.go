package main

import "github.com/OfficialPixelBrush/Pix80Emu/version"

// Various version related constants.
const (
	AppVendor  = version.Vendor
	AppName    = "pix80-rom"
	AppVersion = version.Release
)

// Version returns program version information.
func Version() string {
	return version.String(AppName)
}
