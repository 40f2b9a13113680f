package auth_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"

	"github.com/nouhaa3/invisithreat/internal/app/domain/auth"
)

func renderDoc(t *testing.T, component templ.Component) *goquery.Document {
	t.Helper()
	r, w := io.Pipe()
	go func() {
		if err := component.Render(context.Background(), w); err != nil {
			t.Errorf("Failed to render component: %v", err)
		}
		_ = w.Close()
	}()

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		t.Fatalf("failed to read template: %v", err)
	}
	return doc
}

func TestSignInTemplate(t *testing.T) {
	tests := []struct {
		name   string
		assert func(*testing.T, *goquery.Document)
	}{
		{
			name: "renders the login form with HTMX attributes",
			assert: func(t *testing.T, doc *goquery.Document) {
				form := doc.Find("form#login-form")
				if form.Length() == 0 {
					t.Fatal("Expected form#login-form to be rendered")
				}

				hxPost, _ := form.Attr("hx-post")
				if hxPost != "/auth/login" {
					t.Errorf("Expected hx-post='/auth/login', got '%s'", hxPost)
				}

				hxTarget, _ := form.Attr("hx-target")
				if hxTarget != "this" {
					t.Errorf("Expected hx-target='this', got '%s'", hxTarget)
				}

				hxSwap, _ := form.Attr("hx-swap")
				if hxSwap != "outerHTML" {
					t.Errorf("Expected hx-swap='outerHTML', got '%s'", hxSwap)
				}
			},
		},
		{
			name: "includes email and password fields",
			assert: func(t *testing.T, doc *goquery.Document) {
				if doc.Find("input[name='email'][type='email']").Length() == 0 {
					t.Error("Expected email input field to be rendered")
				}
				if doc.Find("input[name='password'][type='password']").Length() == 0 {
					t.Error("Expected password input field to be rendered")
				}
			},
		},
		{
			name: "links to the signup page",
			assert: func(t *testing.T, doc *goquery.Document) {
				if doc.Find("a[href='/signup']").Length() == 0 {
					t.Error("Expected signup link to be rendered")
				}
			},
		},
		{
			name: "includes a submit button",
			assert: func(t *testing.T, doc *goquery.Document) {
				button := doc.Find("button[type='submit']")
				if button.Length() == 0 {
					t.Fatal("Expected submit button to be rendered")
				}
				if !strings.Contains(button.Text(), "Sign In") {
					t.Errorf("Expected button to contain 'Sign In', got '%s'", button.Text())
				}
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			doc := renderDoc(t, auth.SignIn())
			test.assert(t, doc)
		})
	}
}

func TestSignInFormErrors(t *testing.T) {
	t.Run("renders field errors and the submitted email", func(t *testing.T) {
		doc := renderDoc(t, auth.SignInForm(auth.SignInFormProps{
			Email:  "ada@example.com",
			Errors: auth.FieldErrors{"password": "Password is required"},
		}))

		value, _ := doc.Find("input[name='email']").Attr("value")
		if value != "ada@example.com" {
			t.Errorf("Expected submitted email to be echoed, got '%s'", value)
		}
		if !strings.Contains(doc.Text(), "Password is required") {
			t.Error("Expected field error message to be rendered")
		}
	})

	t.Run("renders the banner when set", func(t *testing.T) {
		doc := renderDoc(t, auth.SignInForm(auth.SignInFormProps{Banner: "Something broke"}))
		if !strings.Contains(doc.Find("[role='alert']").Text(), "Something broke") {
			t.Error("Expected banner message to be rendered")
		}
	})

	t.Run("renders no banner by default", func(t *testing.T) {
		doc := renderDoc(t, auth.SignInForm(auth.SignInFormProps{}))
		if doc.Find("[role='alert']").Length() != 0 {
			t.Error("Expected no banner without a message")
		}
	})
}

func TestSignUpTemplate(t *testing.T) {
	tests := []struct {
		name   string
		assert func(*testing.T, *goquery.Document)
	}{
		{
			name: "renders the signup form with HTMX attributes",
			assert: func(t *testing.T, doc *goquery.Document) {
				form := doc.Find("form#signup-form")
				if form.Length() == 0 {
					t.Fatal("Expected form#signup-form to be rendered")
				}
				hxPost, _ := form.Attr("hx-post")
				if hxPost != "/auth/signup" {
					t.Errorf("Expected hx-post='/auth/signup', got '%s'", hxPost)
				}
			},
		},
		{
			name: "includes all registration fields",
			assert: func(t *testing.T, doc *goquery.Document) {
				for _, name := range []string{"nom", "email", "password", "confirm_password"} {
					if doc.Find("input[name='"+name+"']").Length() == 0 {
						t.Errorf("Expected input named '%s' to be rendered", name)
					}
				}
			},
		},
		{
			name: "wires the password field to the strength endpoint",
			assert: func(t *testing.T, doc *goquery.Document) {
				password := doc.Find("input[name='password']")
				hxPost, _ := password.Attr("hx-post")
				if hxPost != "/auth/password-strength" {
					t.Errorf("Expected hx-post='/auth/password-strength', got '%s'", hxPost)
				}
				hxTarget, _ := password.Attr("hx-target")
				if hxTarget != "#password-strength" {
					t.Errorf("Expected hx-target='#password-strength', got '%s'", hxTarget)
				}
				if doc.Find("#password-strength").Length() == 0 {
					t.Error("Expected #password-strength container to be rendered")
				}
			},
		},
		{
			name: "links to the login page",
			assert: func(t *testing.T, doc *goquery.Document) {
				if doc.Find("a[href='/login']").Length() == 0 {
					t.Error("Expected login link to be rendered")
				}
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			doc := renderDoc(t, auth.SignUp())
			test.assert(t, doc)
		})
	}
}

func TestStrengthMeterTemplate(t *testing.T) {
	t.Run("renders the label for a scored password", func(t *testing.T) {
		doc := renderDoc(t, auth.StrengthMeter(auth.StrengthGood, false))
		if !strings.Contains(doc.Text(), "Good") {
			t.Error("Expected strength label 'Good' to be rendered")
		}
	})

	t.Run("renders no label at score zero", func(t *testing.T) {
		doc := renderDoc(t, auth.StrengthMeter(auth.StrengthNone, false))
		text := strings.TrimSpace(doc.Text())
		if text != "" {
			t.Errorf("Expected empty meter text, got '%s'", text)
		}
	})

	t.Run("renders the weak-sequence advisory", func(t *testing.T) {
		doc := renderDoc(t, auth.StrengthMeter(auth.StrengthStrong, true))
		if !strings.Contains(doc.Text(), "Avoid common sequences") {
			t.Error("Expected weak-sequence advisory to be rendered")
		}
	})
}
