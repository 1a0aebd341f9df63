package template_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailops/poextract/internal/model"
	"github.com/retailops/poextract/internal/template"
)

func namedTemplate(name string, keywords ...string) model.ParsingTemplate {
	tpl := validTemplate()
	tpl.Name = name
	tpl.DetectKeywords = keywords
	return tpl
}

func TestSelect_DisjointKeywords(t *testing.T) {
	templates := []model.ParsingTemplate{
		namedTemplate("acme", "ACME Supplies"),
		namedTemplate("globex", "Globex Corp"),
	}

	c, warnings := template.Select("Invoice from GLOBEX CORP\nsome products", templates)
	require.NotNil(t, c)
	assert.Equal(t, "globex", c.Name)
	assert.Empty(t, warnings)
}

func TestSelect_NoMatchReturnsNil(t *testing.T) {
	templates := []model.ParsingTemplate{
		namedTemplate("acme", "ACME Supplies"),
	}

	c, warnings := template.Select("completely unrelated document", templates)
	assert.Nil(t, c)
	assert.Empty(t, warnings)
}

func TestSelect_FirstMatchWins(t *testing.T) {
	templates := []model.ParsingTemplate{
		namedTemplate("newer", "acme"),
		namedTemplate("older", "acme"),
	}

	c, _ := template.Select("an ACME purchase order", templates)
	require.NotNil(t, c)
	assert.Equal(t, "newer", c.Name)
}

func TestSelect_SkipsInactive(t *testing.T) {
	inactive := namedTemplate("retired", "acme")
	inactive.Active = false
	templates := []model.ParsingTemplate{
		inactive,
		namedTemplate("current", "acme"),
	}

	c, _ := template.Select("an ACME purchase order", templates)
	require.NotNil(t, c)
	assert.Equal(t, "current", c.Name)
}

func TestSelect_MalformedTemplateSkippedWithWarning(t *testing.T) {
	broken := namedTemplate("broken", "acme")
	broken.Products.LineRegex = `([unclosed`
	templates := []model.ParsingTemplate{
		broken,
		namedTemplate("working", "acme"),
	}

	c, warnings := template.Select("an ACME purchase order", templates)
	require.NotNil(t, c)
	assert.Equal(t, "working", c.Name)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "broken")
}

func TestSelect_CaseInsensitiveSubstring(t *testing.T) {
	templates := []model.ParsingTemplate{
		namedTemplate("acme", "AcMe SuPpLiEs"),
	}

	c, _ := template.Select("billed by acme supplies ltd.", templates)
	assert.NotNil(t, c)
}
