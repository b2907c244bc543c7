package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	pkgerrors "github.com/chasinalts/comet-scanner-wizard/internal/pkg/errors"
)

func TestGalleryServiceWithoutObjectStorage(t *testing.T) {
	gs := NewGalleryService(nil, testLogger(t), nil, nil, nil, nil)
	ctx := context.Background()

	_, err := gs.Upload(ctx, uuid.New(), "banner", "banner.png", []byte("png-bytes"))
	if err == nil {
		t.Fatal("Upload without object storage should fail")
	}
	if !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Errorf("Upload error = %v, want ErrInvalidArgument", err)
	}

	err = gs.Delete(ctx, uuid.New())
	if err == nil {
		t.Fatal("Delete without object storage should fail")
	}
	if !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Errorf("Delete error = %v, want ErrInvalidArgument", err)
	}
}
