package content

import (
	"context"
	"net/url"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCasino(name string) CasinoInput {
	return CasinoInput{Name: s(name), AffiliateLink: s("https://example.com/go")}
}

func TestCreateCasinoRatingClamp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		rating string
		want   float64
	}{
		{"7", 5},
		{"-3", 0},
		{"abc", 0},
		{"NaN", 0},
		{"3.5", 3.5},
	}
	for _, tt := range tests {
		in := validCasino("Rating " + tt.rating)
		in.Rating = s(tt.rating)
		res := f.svc.CreateCasino(ctx, in)
		require.True(t, res.Success, res.Message)

		c := f.svc.GetCasino(res.ID)
		require.NotNil(t, c)
		assert.Equal(t, tt.want, c.Rating, "rating %q", tt.rating)
	}
}

func TestCreateCasinoRequiresNameAndLink(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, in := range []CasinoInput{
		{AffiliateLink: s("https://x")},
		{Name: s("   "), AffiliateLink: s("https://x")},
		{Name: s("Lucky")},
	} {
		res := f.svc.CreateCasino(ctx, in)
		assert.False(t, res.Success)
		assert.Equal(t, "Name and affiliate link are required", res.Message)
		assert.Equal(t, StatusInvalid, res.Status)
	}
	assert.Empty(t, jsonFiles(t, f.dir.CasinosDir()))
	assert.Empty(t, f.inv.routes)
}

func TestCreateCasinoFromForm(t *testing.T) {
	f := newFixture(t)

	form := url.Values{
		"name":           {"Lucky Star"},
		"affiliateLink":  {"https://lucky.example"},
		"minimumDeposit": {"-20"},
		"rating":         {"4.2"},
		"paymentMethods": {"Visa, , Skrill ,PayPal"},
		"pros":           {"Fast payouts\n\n  Big bonus  \n"},
		"cons":           {""},
		"seo":            {`{"metaTitle":"Lucky"}`},
	}
	res := f.svc.CreateCasino(context.Background(), CasinoInputFromForm(form))
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "Casino created successfully", res.Message)
	assert.Regexp(t, `^casino-lucky-star-[0-9a-f]{12}$`, res.ID)

	c := f.svc.GetCasino("lucky-star")
	require.NotNil(t, c, "slug falls back to the name")
	assert.Equal(t, res.ID, c.ID)
	assert.Equal(t, 0.0, c.MinimumDeposit)
	assert.Equal(t, []string{"Visa", "Skrill", "PayPal"}, c.PaymentMethods)
	assert.Equal(t, []string{"Fast payouts", "Big bonus"}, c.Pros)
	assert.Equal(t, []string{}, c.Cons)
	require.NotNil(t, c.SEO)
	assert.Equal(t, "Lucky", c.SEO.MetaTitle)

	assert.ElementsMatch(t,
		[]string{"/admin", "/", "/casinos/" + res.ID, "/casinos/lucky-star"},
		f.inv.routes)

	index := f.svc.ListCasinos()
	require.Len(t, index, 1)
	assert.Equal(t, 4.2, index[0].Rating)
}

func TestCreateCasinoInvalidSEO(t *testing.T) {
	f := newFixture(t)
	in := validCasino("Lucky")
	in.SEO = s("{broken")

	res := f.svc.CreateCasino(context.Background(), in)
	assert.False(t, res.Success)
	assert.Equal(t, "Invalid SEO data", res.Message)
	assert.Empty(t, jsonFiles(t, f.dir.CasinosDir()))
}

func TestUpdateCasinoMergesSubmittedFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := validCasino("Lucky")
	in.Logo = s("/images/lucky.png")
	in.Bonus = s("100% up to 200")
	created := f.svc.CreateCasino(ctx, in)
	require.True(t, created.Success)

	f.inv.routes = nil
	res := f.svc.UpdateCasino(ctx, created.ID, CasinoInput{
		Name:   s("Lucky Star"),
		Slug:   s("Lucky Star Casino"),
		Logo:   s(""),
		Rating: s("9"),
	})
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "Casino updated successfully", res.Message)

	c := f.svc.GetCasino(created.ID)
	require.NotNil(t, c)
	assert.Equal(t, "Lucky Star", c.Name)
	assert.Equal(t, "lucky-star-casino", c.Slug)
	assert.Equal(t, "/images/lucky.png", c.Logo, "empty logo keeps the existing one")
	assert.Equal(t, "100% up to 200", c.Bonus)
	assert.Equal(t, 5.0, c.Rating)

	assert.Contains(t, f.inv.routes, "/casinos/lucky", "old slug route is invalidated")
	assert.Contains(t, f.inv.routes, "/casinos/lucky-star-casino")
}

func TestUpdateCasinoValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := f.svc.CreateCasino(ctx, validCasino("Lucky"))
	require.True(t, created.Success)

	res := f.svc.UpdateCasino(ctx, created.ID, CasinoInput{AffiliateLink: s(" ")})
	assert.Equal(t, "Name and affiliate link are required", res.Message)

	res = f.svc.UpdateCasino(ctx, "casino-missing", validCasino("X"))
	assert.Equal(t, "Casino not found", res.Message)
	assert.Equal(t, StatusNotFound, res.Status)
}

func TestDeleteCasino(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := f.svc.CreateCasino(ctx, validCasino("Lucky"))
	require.True(t, created.Success)

	before, err := os.ReadFile(f.dir.CasinoIndexPath())
	require.NoError(t, err)

	res := f.svc.DeleteCasino(ctx, "casino-nope")
	assert.False(t, res.Success)
	assert.Equal(t, "Casino not found", res.Message)
	after, err := os.ReadFile(f.dir.CasinoIndexPath())
	require.NoError(t, err)
	assert.Equal(t, before, after, "failed delete leaves the index untouched")

	res = f.svc.DeleteCasino(ctx, created.ID)
	require.True(t, res.Success)
	assert.Equal(t, "Casino deleted successfully", res.Message)
	assert.Empty(t, f.svc.ListCasinos())
	assert.Nil(t, f.svc.GetCasino(created.ID))
}

func TestListCasinosByIDs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.svc.CreateCasino(ctx, validCasino("Alpha"))
	b := f.svc.CreateCasino(ctx, validCasino("Beta"))

	got := f.svc.ListCasinosByIDs([]string{b.ID, "casino-gone", a.ID})
	require.Len(t, got, 2)
	assert.Equal(t, "Beta", got[0].Name)
	assert.Equal(t, "Alpha", got[1].Name)
}

func TestReadsDegradeOnCorruptIndex(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.MkdirAll(f.dir.CasinosDir(), 0o755))
	require.NoError(t, os.WriteFile(f.dir.CasinoIndexPath(), []byte("not json"), 0o644))

	assert.Empty(t, f.svc.ListCasinos())
	assert.Nil(t, f.svc.GetCasino("anything"))

	res := f.svc.CreateCasino(context.Background(), validCasino("Lucky"))
	assert.False(t, res.Success)
	assert.Equal(t, "Failed to create casino", res.Message)
}
