package mailer

import (
	"bytes"
	"fmt"
	htmpl "html/template"
	texttpl "text/template"
	"time"

	"github.com/oksasatya/rupaykg-biomass/internal/domain/entity"
)

const noticeText = `A biomass dispatch was recorded.

Dispatch:    {{.ID}}
Aggregator:  {{.AggregatorID}}
Buyer:       {{.BuyerID}}
Tonnes:      {{printf "%.2f" .TotalTonnes}}
Recorded by: {{.Actor}}
At:          {{.When}}
`

const noticeHTML = `<p>A biomass dispatch was recorded.</p>
<table>
<tr><td>Dispatch</td><td>{{.ID}}</td></tr>
<tr><td>Aggregator</td><td>{{.AggregatorID}}</td></tr>
<tr><td>Buyer</td><td>{{.BuyerID}}</td></tr>
<tr><td>Tonnes</td><td>{{printf "%.2f" .TotalTonnes}}</td></tr>
<tr><td>Recorded by</td><td>{{.Actor}}</td></tr>
<tr><td>At</td><td>{{.When}}</td></tr>
</table>
`

var (
	noticeTextTpl = texttpl.Must(texttpl.New("dispatch.txt").Parse(noticeText))
	noticeHTMLTpl = htmpl.Must(htmpl.New("dispatch.html").Parse(noticeHTML))
)

type noticeData struct {
	entity.Dispatch
	Actor string
	When  string
}

// DispatchNotice renders the e-mail sent to operations when a dispatch is created.
func DispatchNotice(to, actor string, at time.Time, d entity.Dispatch) (Message, error) {
	data := noticeData{Dispatch: d, Actor: actor, When: at.UTC().Format(time.RFC1123)}
	var text, html bytes.Buffer
	if err := noticeTextTpl.Execute(&text, data); err != nil {
		return Message{}, fmt.Errorf("render dispatch text: %w", err)
	}
	if err := noticeHTMLTpl.Execute(&html, data); err != nil {
		return Message{}, fmt.Errorf("render dispatch html: %w", err)
	}
	return Message{
		To:      to,
		Subject: fmt.Sprintf("Dispatch %s: %.2f t to %s", d.ID, d.TotalTonnes, d.BuyerID),
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}
