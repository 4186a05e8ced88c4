// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package content is the application layer over the JSON record store. Reads
// never fail: errors are logged and degrade to nil or empty results. Writes
// validate their input before touching disk and report the outcome as a
// Result rather than an error.
package content

import (
	"context"
	"io"
	"time"

	"casinoreviews/internal/store"
)

// Invalidator is notified with the site routes whose rendered output a
// write has made stale.
type Invalidator interface {
	InvalidatePaths(ctx context.Context, routes ...string)
	InvalidateAll(ctx context.Context)
}

// Mirror receives a copy of every uploaded image.
type Mirror interface {
	Upload(ctx context.Context, name, contentType string, body io.Reader, size int64) error
	Delete(ctx context.Context, name string) error
}

// Status classifies a failed Result so transports can pick a status code.
type Status int

const (
	StatusOK Status = iota
	StatusInvalid
	StatusNotFound
	StatusConflict
	StatusFailed
)

// Result is the outcome of a write action.
type Result struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ID        string `json:"id,omitempty"`
	ImagePath string `json:"imagePath,omitempty"`
	Status    Status `json:"-"`
}

func succeeded(msg, id string) Result {
	return Result{Success: true, Message: msg, ID: id}
}

func failed(status Status, msg string) Result {
	return Result{Message: msg, Status: status}
}

// ValidationError reports input rejected before any write.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) *ValidationError { return &ValidationError{Message: msg} }

// Service exposes the read API and write actions over one content tree.
type Service struct {
	dir     *store.Dir
	casinos *store.CasinoStore
	pages   *store.PageStore
	media   *store.MediaStore

	invalidator Invalidator
	mirror      Mirror
	now         func() time.Time
}

// NewService creates a content service. invalidator and mirror may be nil.
func NewService(dir *store.Dir, invalidator Invalidator, mirror Mirror) *Service {
	return &Service{
		dir:         dir,
		casinos:     store.NewCasinoStore(dir),
		pages:       store.NewPageStore(dir),
		media:       store.NewMediaStore(dir),
		invalidator: invalidator,
		mirror:      mirror,
		now:         time.Now,
	}
}

// Dir returns the content layout the service operates on.
func (s *Service) Dir() *store.Dir { return s.dir }

func (s *Service) invalidate(ctx context.Context, routes ...string) {
	if s.invalidator == nil {
		return
	}
	s.invalidator.InvalidatePaths(ctx, routes...)
}

// InvalidateAll drops every cached response. Called after repairs, which may
// touch any entity.
func (s *Service) InvalidateAll(ctx context.Context) {
	if s.invalidator == nil {
		return
	}
	s.invalidator.InvalidateAll(ctx)
}
