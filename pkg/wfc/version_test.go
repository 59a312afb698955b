package wfc

import (
	"runtime/debug"
	"testing"
)

func TestGetVersionInfo(t *testing.T) {
	info := GetVersionInfo()
	if info.Version != Version || GetVersion() != Version {
		t.Errorf("Version = %q, want %q", info.Version, Version)
	}
	if info.GoVersion == "" {
		t.Error("GoVersion is empty")
	}
}

func TestVersionInfoFillReadsVCSStamp(t *testing.T) {
	var info VersionInfo
	info.fill(&debug.BuildInfo{
		GoVersion: "go1.25.3",
		Settings: []debug.BuildSetting{
			{Key: "vcs", Value: "git"},
			{Key: "vcs.revision", Value: "3f2c1e9"},
			{Key: "vcs.time", Value: "2026-10-01T12:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	})
	want := VersionInfo{
		GoVersion: "go1.25.3",
		GitCommit: "3f2c1e9",
		BuildDate: "2026-10-01T12:00:00Z",
		Modified:  true,
	}
	if info != want {
		t.Errorf("fill() = %+v, want %+v", info, want)
	}
}
