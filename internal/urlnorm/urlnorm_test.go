package urlnorm

import "testing"

const site = "https://example.com"

func TestToRelative(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "html href on own site",
			in:   `<a href="https://example.com/about">About</a>`,
			want: `<a href="/about">About</a>`,
		},
		{
			name: "html src on own site",
			in:   `<img src="https://example.com/img/cat.png">`,
			want: `<img src="/img/cat.png">`,
		},
		{
			name: "foreign host untouched",
			in:   `<a href="https://other.com/page">x</a>`,
			want: `<a href="https://other.com/page">x</a>`,
		},
		{
			name: "markdown link on own site",
			in:   `See [docs](https://example.com/docs/intro).`,
			want: `See [docs](/docs/intro).`,
		},
		{
			name: "markdown image on own site",
			in:   `![cat](https://example.com/img/cat.png)`,
			want: `![cat](/img/cat.png)`,
		},
		{
			name: "bare site root",
			in:   `<a href="https://example.com">home</a>`,
			want: `<a href="/">home</a>`,
		},
		{
			name: "single quotes",
			in:   `<a href='https://example.com/a'>a</a>`,
			want: `<a href='/a'>a</a>`,
		},
		{
			name: "already relative untouched",
			in:   `<a href="/about">About</a>`,
			want: `<a href="/about">About</a>`,
		},
		{
			name: "prefix host not confused with site",
			in:   `<a href="https://example.com.evil.com/x">x</a>`,
			want: `<a href="https://example.com.evil.com/x">x</a>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToRelative(tt.in, site); got != tt.want {
				t.Errorf("ToRelative() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToAbsolute(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "relative href expanded",
			in:   `<a href="/about">About</a>`,
			want: `<a href="https://example.com/about">About</a>`,
		},
		{
			name: "relative markdown link expanded",
			in:   `[docs](/docs/intro)`,
			want: `[docs](https://example.com/docs/intro)`,
		},
		{
			name: "absolute untouched",
			in:   `<a href="https://other.com/p">x</a>`,
			want: `<a href="https://other.com/p">x</a>`,
		},
		{
			name: "protocol relative untouched",
			in:   `<img src="//cdn.example.com/x.png">`,
			want: `<img src="//cdn.example.com/x.png">`,
		},
		{
			name: "anchor untouched",
			in:   `<a href="#section">jump</a>`,
			want: `<a href="#section">jump</a>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToAbsolute(tt.in, site); got != tt.want {
				t.Errorf("ToAbsolute() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestRoundTrip ensures relative→absolute→relative is stable.
func TestRoundTrip(t *testing.T) {
	stored := `<p><a href="/a">a</a> and [b](/b)</p>`
	rendered := ToAbsolute(stored, site)
	back := ToRelative(rendered, site)
	if back != stored {
		t.Errorf("round trip changed body: %q → %q", stored, back)
	}
}
