package assistant

import (
	"io"
	"log/slog"
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huntrbrooks/Money-sub001/internal/domain/models"
	"github.com/huntrbrooks/Money-sub001/internal/service/siteconfig"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ruleNames(changes []models.AssistantChange) []string {
	names := make([]string, len(changes))
	for i, c := range changes {
		names[i] = c.Rule
	}
	return names
}

func TestApply_ColorAndService(t *testing.T) {
	m := NewMutator(testLogger())
	current := siteconfig.Defaults()

	got, changes, err := m.Apply(`set primary color to #112233 and add service "Intake Call" price $50`, current)
	require.NoError(t, err)
	assert.Equal(t, []string{"primary color", "add service"}, ruleNames(changes))

	want := siteconfig.Defaults().WithField(models.SectionTheme, "primary", "#112233")
	want[models.SectionServices] = append(want[models.SectionServices].([]interface{}),
		map[string]interface{}{"id": "intake-call", "name": "Intake Call", "price": "$50"})

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, cmp.Diff(siteconfig.Defaults(), current), "input must not change")
}

func TestApply_NoMatch(t *testing.T) {
	m := NewMutator(testLogger())
	current := siteconfig.Defaults()

	got, changes, err := m.Apply("make it pop", current)
	require.NoError(t, err)
	assert.Empty(t, changes)
	assert.Empty(t, cmp.Diff(current, got))

	// the copy is independent of the input
	got[models.SectionTheme].(map[string]interface{})["primary"] = "#000000"
	assert.Equal(t, siteconfig.DefaultPrimaryColor, current.String(models.SectionTheme, "primary"))
}

func TestApply_NilDocument(t *testing.T) {
	got, changes, err := NewMutator(testLogger()).Apply("set accent colour to teal", nil)
	require.NoError(t, err)
	assert.Len(t, changes, 1)
	assert.Equal(t, "teal", got.String(models.SectionTheme, "accent"))
}

func TestApply_TextFields(t *testing.T) {
	tests := []struct {
		name        string
		instruction string
		section     string
		key         string
		want        string
	}{
		{"quoted brand name", `set brand name to "Calm Waters Counselling"`, models.SectionBrand, "name", "Calm Waters Counselling"},
		{"unquoted tagline", "change tagline to Talk it through", models.SectionBrand, "tagline", "Talk it through"},
		{"phone stops at comma", "phone number: 0400 000 000, hero title to Welcome", models.SectionContact, "phone", "0400 000 000"},
		{"hero title after comma", "phone number: 0400 000 000, hero title to Welcome", models.SectionHero, "title", "Welcome"},
		{"meta description", "meta description = Online counselling in Sydney", models.SectionSEO, "description", "Online counselling in Sydney"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := NewMutator(testLogger()).Apply(tt.instruction, siteconfig.Defaults())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String(tt.section, tt.key))
		})
	}
}

func TestApply_EmailAddressIsNotStreetAddress(t *testing.T) {
	got, changes, err := NewMutator(testLogger()).Apply(
		"set email address to hello@example.com and address to 1 Main St", siteconfig.Defaults())
	require.NoError(t, err)

	assert.Equal(t, []string{"email", "address"}, ruleNames(changes))
	assert.Equal(t, "hello@example.com", got.String(models.SectionContact, "email"))
	assert.Equal(t, "1 Main St", got.String(models.SectionContact, "address"))
}

func TestApply_ColorRulesNeedTheirOwnPhrase(t *testing.T) {
	got, changes, err := NewMutator(testLogger()).Apply("set primary and accent color to #abc", siteconfig.Defaults())
	require.NoError(t, err)

	assert.Equal(t, []string{"accent color"}, ruleNames(changes))
	assert.Equal(t, siteconfig.DefaultPrimaryColor, got.String(models.SectionTheme, "primary"))
	assert.Equal(t, "#abc", got.String(models.SectionTheme, "accent"))
}

func TestApply_Services(t *testing.T) {
	m := NewMutator(testLogger())

	t.Run("remove by name", func(t *testing.T) {
		got, _, err := m.Apply(`remove service "couples counselling"`, siteconfig.Defaults())
		require.NoError(t, err)

		items, err := got.Services()
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "individual-counselling", items[0].ID)
	})

	t.Run("set price adds dollar sign", func(t *testing.T) {
		got, _, err := m.Apply(`set "Individual Counselling" price to 165`, siteconfig.Defaults())
		require.NoError(t, err)

		items, err := got.Services()
		require.NoError(t, err)
		assert.Equal(t, "$165", items[0].Price)
		assert.Equal(t, "50 min", items[0].Duration, "other keys are kept")
	})

	t.Run("adding an existing service updates it", func(t *testing.T) {
		got, _, err := m.Apply(`add service "Couples Counselling" price $200`, siteconfig.Defaults())
		require.NoError(t, err)

		items, err := got.Services()
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "$200", items[1].Price)
	})

	t.Run("repeat rules apply every match", func(t *testing.T) {
		got, changes, err := m.Apply(`add service "Group" and add service "Workshop" price 30`, siteconfig.Defaults())
		require.NoError(t, err)
		assert.Len(t, changes, 2)

		items, err := got.Services()
		require.NoError(t, err)
		require.Len(t, items, 4)
		assert.Equal(t, models.ServiceItem{ID: "group", Name: "Group"}, items[2])
		assert.Equal(t, models.ServiceItem{ID: "workshop", Name: "Workshop", Price: "$30"}, items[3])
	})

	t.Run("malformed section treated as empty", func(t *testing.T) {
		doc := siteconfig.Defaults()
		doc[models.SectionServices] = "oops"

		got, _, err := m.Apply(`add service "Intake"`, doc)
		require.NoError(t, err)
		assert.Equal(t, []interface{}{map[string]interface{}{"id": "intake", "name": "Intake"}}, got[models.SectionServices])
	})
}

func TestApply_CustomRules(t *testing.T) {
	rule := Rule{
		Name:    "font",
		Pattern: regexp.MustCompile(`(?i)heading font to (\w+)`),
		Apply: func(doc models.SiteConfiguration, m []string) (models.SiteConfiguration, error) {
			return doc.WithField(models.SectionTheme, "fontHeading", m[1]), nil
		},
	}

	got, changes, err := NewMutator(testLogger(), rule).Apply("heading font to Merriweather, primary color to red", siteconfig.Defaults())
	require.NoError(t, err)
	assert.Equal(t, []string{"font"}, ruleNames(changes))
	assert.Equal(t, "Merriweather", got.String(models.SectionTheme, "fontHeading"))
	assert.Equal(t, siteconfig.DefaultPrimaryColor, got.String(models.SectionTheme, "primary"))
}

func TestApply_RuleErrorAborts(t *testing.T) {
	_, _, err := NewMutator(testLogger()).Apply(`add service "   "`, siteconfig.Defaults())
	assert.Error(t, err)
}
