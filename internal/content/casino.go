// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"

	"casinoreviews/internal/models"
	"casinoreviews/internal/slug"
	"casinoreviews/internal/store"
)

const msgCasinoRequired = "Name and affiliate link are required"

// CasinoInput holds raw casino form values. A nil field was not submitted;
// on update it leaves the stored value unchanged.
type CasinoInput struct {
	Name           *string
	Slug           *string
	Logo           *string
	MinimumDeposit *string
	Rating         *string
	AffiliateLink  *string
	Bonus          *string
	PaymentMethods *string // comma separated
	Pros           *string // one per line
	Cons           *string // one per line
	Review         *string
	SEO            *string // JSON object
}

// CasinoInputFromForm collects the casino fields present in form.
func CasinoInputFromForm(form url.Values) CasinoInput {
	return CasinoInput{
		Name:           formField(form, "name"),
		Slug:           formField(form, "slug"),
		Logo:           formField(form, "logo"),
		MinimumDeposit: formField(form, "minimumDeposit"),
		Rating:         formField(form, "rating"),
		AffiliateLink:  formField(form, "affiliateLink"),
		Bonus:          formField(form, "bonus"),
		PaymentMethods: formField(form, "paymentMethods"),
		Pros:           formField(form, "pros"),
		Cons:           formField(form, "cons"),
		Review:         formField(form, "review"),
		SEO:            formField(form, "seo"),
	}
}

// newCasino validates a create request and builds the casino without an ID.
func newCasino(in CasinoInput) (*models.Casino, error) {
	name := trimmed(in.Name)
	link := trimmed(in.AffiliateLink)
	if name == "" || link == "" {
		return nil, invalid(msgCasinoRequired)
	}

	c := &models.Casino{
		Name:           name,
		AffiliateLink:  link,
		Logo:           trimmed(in.Logo),
		MinimumDeposit: parseDeposit(trimmed(in.MinimumDeposit)),
		Rating:         parseRating(trimmed(in.Rating)),
		PaymentMethods: splitList(trimmed(in.PaymentMethods), ","),
		Pros:           splitList(trimmed(in.Pros), "\n"),
		Cons:           splitList(trimmed(in.Cons), "\n"),
	}
	if in.Bonus != nil {
		c.Bonus = *in.Bonus
	}
	if in.Review != nil {
		c.Review = *in.Review
	}

	c.Slug = slug.Generate(trimmed(in.Slug))
	if c.Slug == "" {
		c.Slug = slug.Generate(name)
	}

	if in.SEO != nil {
		seo, err := parseSEO(*in.SEO)
		if err != nil {
			return nil, err
		}
		if !seo.IsZero() {
			c.SEO = seo
		}
	}
	return c, nil
}

// casinoPatch validates an update request against the stored casino.
func casinoPatch(in CasinoInput, existing *models.Casino) (store.CasinoPatch, error) {
	var p store.CasinoPatch

	name := existing.Name
	if in.Name != nil {
		name = strings.TrimSpace(*in.Name)
		if name == "" {
			return p, invalid(msgCasinoRequired)
		}
		p.Name = &name
	}
	if in.AffiliateLink != nil {
		link := strings.TrimSpace(*in.AffiliateLink)
		if link == "" {
			return p, invalid(msgCasinoRequired)
		}
		p.AffiliateLink = &link
	}

	if in.Slug != nil {
		s := slug.Generate(*in.Slug)
		if s == "" {
			s = slug.Generate(name)
		}
		p.Slug = &s
	}
	// An empty logo keeps the current one.
	if logo := trimmed(in.Logo); logo != "" {
		p.Logo = &logo
	}
	if in.MinimumDeposit != nil {
		p.MinimumDeposit = ptr(parseDeposit(*in.MinimumDeposit))
	}
	if in.Rating != nil {
		p.Rating = ptr(parseRating(*in.Rating))
	}
	if in.Bonus != nil {
		p.Bonus = in.Bonus
	}
	if in.PaymentMethods != nil {
		p.PaymentMethods = ptr(splitList(*in.PaymentMethods, ","))
	}
	if in.Pros != nil {
		p.Pros = ptr(splitList(*in.Pros, "\n"))
	}
	if in.Cons != nil {
		p.Cons = ptr(splitList(*in.Cons, "\n"))
	}
	if in.Review != nil {
		p.Review = in.Review
	}
	if in.SEO != nil {
		seo, err := parseSEO(*in.SEO)
		if err != nil {
			return p, err
		}
		p.SEO = seo
	}
	return p, nil
}

// CreateCasino validates in, mints an ID, and persists the casino.
func (s *Service) CreateCasino(ctx context.Context, in CasinoInput) Result {
	c, err := newCasino(in)
	if err != nil {
		return validationResult(err)
	}
	c.ID = slug.MintID("casino", c.Name)

	if err := s.casinos.Create(c); err != nil {
		slog.Error("failed to create casino", "name", c.Name, "error", err)
		return failed(StatusFailed, "Failed to create casino")
	}

	slog.Info("casino created", "id", c.ID, "slug", c.Slug)
	s.invalidate(ctx, casinoRoutes(c.ID, c.Slug)...)
	return succeeded("Casino created successfully", c.ID)
}

// UpdateCasino merges the submitted fields into an existing casino.
func (s *Service) UpdateCasino(ctx context.Context, id string, in CasinoInput) Result {
	existing, err := s.casinos.Get(id)
	if err != nil {
		slog.Error("failed to read casino for update", "id", id, "error", err)
		return failed(StatusFailed, "Failed to update casino")
	}
	if existing == nil {
		return failed(StatusNotFound, "Casino not found")
	}
	oldSlug := existing.Slug

	patch, err := casinoPatch(in, existing)
	if err != nil {
		return validationResult(err)
	}

	updated, err := s.casinos.Update(existing.ID, patch)
	if errors.Is(err, store.ErrNotFound) {
		return failed(StatusNotFound, "Casino not found")
	}
	if err != nil {
		slog.Error("failed to update casino", "id", existing.ID, "error", err)
		return failed(StatusFailed, "Failed to update casino")
	}

	slog.Info("casino updated", "id", updated.ID)
	routes := casinoRoutes(updated.ID, updated.Slug)
	if oldSlug != "" && oldSlug != updated.Slug {
		routes = append(routes, "/casinos/"+oldSlug)
	}
	s.invalidate(ctx, routes...)
	return succeeded("Casino updated successfully", updated.ID)
}

// DeleteCasino removes a casino and its index entry.
func (s *Service) DeleteCasino(ctx context.Context, id string) Result {
	deleted, err := s.casinos.Delete(id)
	if errors.Is(err, store.ErrNotFound) {
		return failed(StatusNotFound, "Casino not found")
	}
	if err != nil {
		slog.Error("failed to delete casino", "id", id, "error", err)
		return failed(StatusFailed, "Failed to delete casino")
	}

	slog.Info("casino deleted", "id", id)
	s.invalidate(ctx, casinoRoutes(deleted.ID, deleted.Slug)...)
	return succeeded("Casino deleted successfully", deleted.ID)
}

func casinoRoutes(id, casinoSlug string) []string {
	routes := []string{"/admin", "/", "/casinos/" + id}
	if casinoSlug != "" && casinoSlug != id {
		routes = append(routes, "/casinos/"+casinoSlug)
	}
	return routes
}

func validationResult(err error) Result {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return failed(StatusInvalid, ve.Message)
	}
	return failed(StatusInvalid, err.Error())
}
