package domain

import "testing"

func TestUserFullName(t *testing.T) {
	cases := []struct {
		name string
		user User
		want string
	}{
		{"first and last", User{Username: "jb", FirstName: "John", LastName: "Banda"}, "John Banda"},
		{"first only", User{Username: "jb", FirstName: "John"}, "John"},
		{"last only", User{Username: "jb", LastName: "Banda"}, "Banda"},
		{"neither falls back to username", User{Username: "jb"}, "jb"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.user.FullName(); got != tc.want {
				t.Errorf("FullName() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestPropertyMainImage(t *testing.T) {
	p := Property{Images: []string{"/media/a.jpg", "/media/b.jpg"}}
	if got := p.MainImage(); got != "/media/a.jpg" {
		t.Errorf("MainImage() = %q, want first image", got)
	}

	empty := Property{}
	if got := empty.MainImage(); got != "" {
		t.Errorf("MainImage() = %q, want empty string", got)
	}
}
