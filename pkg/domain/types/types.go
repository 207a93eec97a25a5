package types

import (
	"log/slog"

	"github.com/google/uuid"
)

type (
	// BuildNumber is signed 32-bit because the distribution API is a Java service using int.
	BuildNumber int32

	ProjectID    string
	VersionLabel string
	TargetName   string
	TargetKind   string
	CommitSHA    string
	BranchName   string
	EventID      string

	GitHubAppID         int64
	GitHubAppInstallID  int64
	GitHubAppPrivateKey string
	GitHubToken         string
)

const (
	TargetKindBuild  TargetKind = "build"
	TargetKindCommit TargetKind = "commit"
)

func (x TargetKind) Valid() bool {
	switch x {
	case TargetKindBuild, TargetKindCommit:
		return true
	default:
		return false
	}
}

func NewEventID() EventID {
	return EventID(uuid.NewString())
}

func (x CommitSHA) Short() string {
	if len(x) > 7 {
		return string(x[:7])
	}
	return string(x)
}

func (x GitHubAppPrivateKey) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitHubAppPrivateKey) String() string {
	return "***********"
}

func (x GitHubToken) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitHubToken) String() string {
	return "***********"
}

type RequestID string

func NewRequestID() RequestID {
	return RequestID(uuid.NewString())
}
