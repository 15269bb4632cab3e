package domain

// ImageRefKind tags an image reference as persisted or pending upload
type ImageRefKind string

const (
	ImageRefPersisted    ImageRefKind = "persisted"
	ImageRefPendingLocal ImageRefKind = "pending_local"
)

// ImageRef is a tagged image reference: either a storage key of an
// uploaded object, or a client-local id for an upload still in flight.
// It replaces the old convention of sniffing a string prefix to decide
// whether an image had been saved.
type ImageRef struct {
	Kind    ImageRefKind `json:"kind"`
	Key     string       `json:"key,omitempty"`
	LocalID string       `json:"local_id,omitempty"`
}

// PersistedImage references an object already in storage
func PersistedImage(key string) ImageRef {
	return ImageRef{Kind: ImageRefPersisted, Key: key}
}

// PendingImage references a client-local file awaiting upload
func PendingImage(localID string) ImageRef {
	return ImageRef{Kind: ImageRefPendingLocal, LocalID: localID}
}

// IsPersisted reports whether the image is safe to reference in saved
// records and rendered output
func (r ImageRef) IsPersisted() bool {
	return r.Kind == ImageRefPersisted && r.Key != ""
}

// Resolve converts a pending reference to a persisted one after a
// successful upload. Resolving an already-persisted ref is a no-op.
func (r ImageRef) Resolve(key string) ImageRef {
	if r.IsPersisted() {
		return r
	}
	return PersistedImage(key)
}
