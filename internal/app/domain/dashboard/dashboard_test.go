package dashboard_test

import (
	"context"
	"io"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nouhaa3/invisithreat/internal/app/domain/dashboard"
	"github.com/nouhaa3/invisithreat/internal/app/models"
)

func renderDoc(t *testing.T, component templ.Component) *goquery.Document {
	t.Helper()
	r, w := io.Pipe()
	go func() {
		_ = component.Render(context.Background(), w)
		_ = w.Close()
	}()
	doc, err := goquery.NewDocumentFromReader(r)
	require.NoError(t, err)
	return doc
}

func TestDashboardPage(t *testing.T) {
	user := &models.User{
		ID:       "user-1",
		Email:    "ada@example.com",
		Nom:      "Ada",
		IsActive: true,
		RoleName: "Analyst",
	}

	t.Run("it greets the signed-in user by name", func(t *testing.T) {
		doc := renderDoc(t, dashboard.DashboardPage(user))

		assert.Contains(t, doc.Find("h1").Text(), "Welcome, Ada")
		assert.Contains(t, doc.Find("p").First().Text(), "You are logged in as")
		assert.Equal(t, "Analyst", doc.Find("p span").First().Text())
	})

	t.Run("it offers a sign out control", func(t *testing.T) {
		doc := renderDoc(t, dashboard.DashboardPage(user))

		form := doc.Find("form[action='/auth/logout']")
		require.Equal(t, 1, form.Length())
		assert.Equal(t, "Sign Out", form.Find("button[type='submit']").Text())
	})

	t.Run("it renders without a greeting when the user record is missing", func(t *testing.T) {
		doc := renderDoc(t, dashboard.DashboardPage(nil))

		assert.Equal(t, 0, doc.Find("h1").Length())
		assert.Contains(t, doc.Text(), "Threat overview")
	})
}
