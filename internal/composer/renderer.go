package composer

import (
	"bytes"
	"html/template"
	"sort"
	"time"

	"github.com/localscoop/escoop-backend/internal/domain"
)

// DateLayout is the display format for all dates in the rendered issue
const DateLayout = "Jan 2, 2006"

// DateTBD is rendered when an event has no start date
const DateTBD = "Date TBD"

// FormatDate renders a date for the issue, falling back to DateTBD
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return DateTBD
	}
	return t.Format(DateLayout)
}

// Renderer produces the final newsletter HTML from a composition.
// Rendering is deterministic: the same composition and banner set always
// produce byte-identical output. Sections appear in a fixed order and a
// section with no content is omitted entirely.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the built-in issue template
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("issue").Parse(issueTemplate)
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl}, nil
}

type bannerView struct {
	ImageURL string
	LinkURL  string
	Alt      string
}

type eventLine struct {
	Title    string
	Date     string
	Venue    string
	Place    string
	ImageURL string
	Featured bool
}

type pickLine struct {
	Name        string
	Description string
	Place       string
	ImageURL    string
	PickOfMonth bool
}

type editorialLine struct {
	Title    string
	Content  template.HTML
	ImageURL string
}

type issueView struct {
	Name     string
	Title    string
	SendDate string

	TopBanner    *bannerView
	MiddleBanner *bannerView
	BottomBanner *bannerView

	Featured   []eventLine
	Events     []eventLine
	Picks      []pickLine
	Editorials []editorialLine
}

// Render produces the issue HTML. Only selected entries, featured-flagged
// curated events, and active banners appear; inactive banners and
// deselected entries are excluded regardless of stored order.
func (r *Renderer) Render(c Composition, banners []domain.Banner) (string, error) {
	view := issueView{
		Name:  c.Name,
		Title: c.Title,
	}
	if c.SendDate != nil {
		view.SendDate = c.SendDate.Format(DateLayout)
	}

	view.TopBanner, view.MiddleBanner, view.BottomBanner = slotBanners(banners)

	for _, fe := range c.FeaturedEvents {
		if !fe.IsFeatured {
			continue
		}
		view.Featured = append(view.Featured, eventLine{
			Title:    fe.Event.Title,
			Date:     FormatDate(fe.Event.StartDate),
			Venue:    fe.Event.Venue,
			Place:    place(fe.Event.City, fe.Event.State),
			ImageURL: fe.Event.ImageURL,
			Featured: true,
		})
	}

	for _, e := range c.SelectedEntries() {
		view.Events = append(view.Events, eventLine{
			Title:    e.Event.Title,
			Date:     FormatDate(e.Event.StartDate),
			Venue:    e.Event.Venue,
			Place:    place(e.Event.City, e.Event.State),
			ImageURL: e.Event.ImageURL,
		})
	}

	pick, hasPick := c.PickOfMonth()
	for _, p := range c.Restaurants {
		view.Picks = append(view.Picks, pickLine{
			Name:        p.Name,
			Description: p.Description,
			Place:       place(p.City, p.State),
			ImageURL:    p.ImageURL,
			PickOfMonth: hasPick && p.RestaurantID == pick.RestaurantID,
		})
	}

	for _, e := range c.Editorials {
		view.Editorials = append(view.Editorials, editorialLine{
			Title:    e.Title,
			Content:  template.HTML(e.Content),
			ImageURL: e.ImageURL,
		})
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// slotBanners assigns active banners to the three template slots by their
// position, in ascending slot order. The first active banner per slot
// wins; banners outside the known slots are dropped.
func slotBanners(banners []domain.Banner) (top, middle, bottom *bannerView) {
	ordered := append([]domain.Banner(nil), banners...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position < ordered[j].Position
	})
	for i := range ordered {
		b := ordered[i]
		if !b.IsActive {
			continue
		}
		view := &bannerView{ImageURL: b.ImageURL, LinkURL: b.LinkURL, Alt: b.DisplayName}
		switch b.Position {
		case domain.BannerSlotTop:
			if top == nil {
				top = view
			}
		case domain.BannerSlotMiddle:
			if middle == nil {
				middle = view
			}
		case domain.BannerSlotBottom:
			if bottom == nil {
				bottom = view
			}
		}
	}
	return top, middle, bottom
}

func place(city, state string) string {
	switch {
	case city != "" && state != "":
		return city + ", " + state
	case city != "":
		return city
	default:
		return state
	}
}

// issueTemplate is the email-safe issue layout. The unsubscribe href is a
// merge tag the provider substitutes per recipient at send time.
const issueTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body style="margin:0;padding:0;background:#f4f4f4;font-family:Georgia,serif;">
<table role="presentation" width="100%" cellpadding="0" cellspacing="0"><tr><td align="center">
<table role="presentation" width="600" cellpadding="0" cellspacing="0" style="background:#ffffff;">
<tr><td style="padding:24px;text-align:center;">
<h1 style="margin:0;">{{.Name}}</h1>
{{if .Title}}<p style="margin:8px 0 0;color:#555;">{{.Title}}</p>{{end}}
{{if .SendDate}}<p style="margin:4px 0 0;color:#999;font-size:13px;">{{.SendDate}}</p>{{end}}
</td></tr>
{{if .TopBanner}}
<tr><td style="padding:0 24px;"><a href="{{.TopBanner.LinkURL}}"><img src="{{.TopBanner.ImageURL}}" alt="{{.TopBanner.Alt}}" width="552" style="display:block;"></a></td></tr>
{{end}}
{{if .Events}}
<tr><td style="padding:24px;">
<h2 style="border-bottom:2px solid #222;padding-bottom:8px;">Upcoming Events</h2>
{{range .Events}}
<table role="presentation" width="100%" cellpadding="0" cellspacing="0" style="margin-top:12px;"><tr>
<td valign="top">
<h3 style="margin:0;font-size:16px;">{{.Title}}</h3>
<p style="margin:2px 0 0;color:#777;font-size:13px;">{{.Date}}{{if .Venue}} &middot; {{.Venue}}{{end}}{{if .Place}} &middot; {{.Place}}{{end}}</p>
</td></tr></table>
{{end}}
</td></tr>
{{end}}
{{if .Featured}}
<tr><td style="padding:0 24px 24px;">
<h2 style="border-bottom:2px solid #222;padding-bottom:8px;">Featured This Issue</h2>
{{range .Featured}}
<table role="presentation" width="100%" cellpadding="0" cellspacing="0" style="margin-top:16px;"><tr>
{{if .ImageURL}}<td width="140" valign="top"><img src="{{.ImageURL}}" alt="{{.Title}}" width="130" style="display:block;"></td>{{end}}
<td valign="top">
<h3 style="margin:0;">{{.Title}}</h3>
<p style="margin:4px 0 0;color:#777;font-size:14px;">{{.Date}}{{if .Venue}} &middot; {{.Venue}}{{end}}{{if .Place}} &middot; {{.Place}}{{end}}</p>
</td></tr></table>
{{end}}
</td></tr>
{{end}}
{{if .MiddleBanner}}
<tr><td style="padding:0 24px;"><a href="{{.MiddleBanner.LinkURL}}"><img src="{{.MiddleBanner.ImageURL}}" alt="{{.MiddleBanner.Alt}}" width="552" style="display:block;"></a></td></tr>
{{end}}
{{if .Editorials}}
<tr><td style="padding:24px;">
<h2 style="border-bottom:2px solid #222;padding-bottom:8px;">From The Editors</h2>
{{range .Editorials}}
<div style="margin-top:16px;">
{{if .Title}}<h3 style="margin:0;">{{.Title}}</h3>{{end}}
{{if .ImageURL}}<img src="{{.ImageURL}}" alt="{{.Title}}" width="552" style="display:block;margin-top:8px;">{{end}}
<div style="margin-top:8px;font-size:14px;">{{.Content}}</div>
</div>
{{end}}
</td></tr>
{{end}}
{{if .Picks}}
<tr><td style="padding:0 24px 24px;">
<h2 style="border-bottom:2px solid #222;padding-bottom:8px;">Where To Eat</h2>
{{range .Picks}}
<table role="presentation" width="100%" cellpadding="0" cellspacing="0" style="margin-top:16px;"><tr>
{{if .ImageURL}}<td width="140" valign="top"><img src="{{.ImageURL}}" alt="{{.Name}}" width="130" style="display:block;"></td>{{end}}
<td valign="top">
<h3 style="margin:0;">{{.Name}}{{if .PickOfMonth}} <span style="background:#c0392b;color:#fff;font-size:11px;padding:2px 6px;border-radius:3px;vertical-align:middle;">PICK OF THE MONTH</span>{{end}}</h3>
{{if .Place}}<p style="margin:2px 0 0;color:#777;font-size:13px;">{{.Place}}</p>{{end}}
{{if .Description}}<p style="margin:6px 0 0;font-size:14px;">{{.Description}}</p>{{end}}
</td></tr></table>
{{end}}
</td></tr>
{{end}}
{{if .BottomBanner}}
<tr><td style="padding:0 24px 24px;"><a href="{{.BottomBanner.LinkURL}}"><img src="{{.BottomBanner.ImageURL}}" alt="{{.BottomBanner.Alt}}" width="552" style="display:block;"></a></td></tr>
{{end}}
<tr><td style="padding:16px 24px;background:#222;color:#aaa;font-size:12px;text-align:center;">
You are receiving this because you subscribed to {{.Name}}.<br>
<a href="*|UNSUB|*" style="color:#aaa;">Unsubscribe</a>
</td></tr>
</table>
</td></tr></table>
</body>
</html>
`
