package fetch

import (
	"bytes"
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"strings"
	"time"
)

type rawMail struct {
	date time.Time
	body []byte
}

// mailPage is the readable part of one alert email.
type mailPage struct {
	date time.Time
	html string
	text string
}

func parseMail(m rawMail) mailPage {
	page := mailPage{date: m.date}
	msg, err := mail.ReadMessage(bytes.NewReader(m.body))
	if err != nil {
		page.text = string(m.body)
		return page
	}
	if page.date.IsZero() {
		if d, err := msg.Header.Date(); err == nil {
			page.date = d
		}
	}
	body, _ := io.ReadAll(io.LimitReader(msg.Body, 25<<20))
	page.text, page.html = textParts(msg.Header, body)
	if page.text == "" && page.html == "" {
		page.text = string(body)
	}
	return page
}

// textParts returns the longest text/plain and text/html bodies, walking
// nested multiparts.
func textParts(h mail.Header, body []byte) (plain, html string) {
	cte := strings.ToLower(strings.TrimSpace(h.Get("Content-Transfer-Encoding")))

	mediaType, params, err := mime.ParseMediaType(h.Get("Content-Type"))
	if err != nil {
		return string(decodeTransfer(body, cte)), ""
	}
	mediaType = strings.ToLower(mediaType)

	if strings.HasPrefix(mediaType, "multipart/") {
		boundary := params["boundary"]
		if boundary == "" {
			return string(decodeTransfer(body, cte)), ""
		}
		mr := multipart.NewReader(bytes.NewReader(body), boundary)
		for {
			p, err := mr.NextPart()
			if err != nil {
				break
			}
			b, _ := io.ReadAll(io.LimitReader(p, 20<<20))
			pl, ht := textParts(mail.Header(p.Header), b)
			if len(pl) > len(plain) {
				plain = pl
			}
			if len(ht) > len(html) {
				html = ht
			}
		}
		return plain, html
	}

	s := string(decodeTransfer(body, cte))
	switch {
	case strings.HasPrefix(mediaType, "text/html"):
		return "", s
	case strings.HasPrefix(mediaType, "text/"):
		return s, ""
	default:
		return "", ""
	}
}

func decodeTransfer(b []byte, cte string) []byte {
	var r io.Reader
	switch cte {
	case "base64":
		r = base64.NewDecoder(base64.StdEncoding, bytes.NewReader(b))
	case "quoted-printable":
		r = quotedprintable.NewReader(bytes.NewReader(b))
	default:
		return b
	}
	out, _ := io.ReadAll(io.LimitReader(r, 6<<20))
	return out
}
