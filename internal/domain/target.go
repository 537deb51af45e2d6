package domain

// TargetKind tags the delivery strategy variant.
type TargetKind string

const (
	TargetFile   TargetKind = "file"
	TargetRemote TargetKind = "remote"
)

// DeliveryTarget names exactly one destination for an acquired ticket,
// chosen once at startup and fixed for the whole run.
type DeliveryTarget struct {
	Kind TargetKind

	// File variant.
	Path string

	// Remote variant.
	URL   string
	Email string // optional account hint forwarded alongside the ticket
}

// FileTarget builds a file-delivery target.
func FileTarget(path string) DeliveryTarget {
	return DeliveryTarget{Kind: TargetFile, Path: path}
}

// RemoteTarget builds a remote-delivery target.
func RemoteTarget(url, email string) DeliveryTarget {
	return DeliveryTarget{Kind: TargetRemote, URL: url, Email: email}
}

// ChooseTarget applies the selection rule: a remote URL, when given, wins
// over the file path; otherwise the ticket goes to the file.
func ChooseTarget(url, email, path string) DeliveryTarget {
	if url != "" {
		return RemoteTarget(url, email)
	}
	return FileTarget(path)
}

// String returns the destination as a short human label.
func (t DeliveryTarget) String() string {
	if t.Kind == TargetRemote {
		return t.URL
	}
	return t.Path
}
