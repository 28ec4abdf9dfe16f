package fetch

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"leadflow-engine/internal/domain"
	"leadflow-engine/internal/secrets"
)

type MailboxOptions struct {
	Host         string
	Port         int
	Username     string
	Password     string // looked up in the keychain when empty
	Mailbox      string
	MaxMessages  int
	SinceDays    int
	CardSelector string
	Timeout      time.Duration
}

// Mailbox reads listing cards out of alert emails (obituary digests, saved
// search notifications). Messages are downloaded once per run and every
// query filters them by city.
type Mailbox struct {
	opts MailboxOptions
	log  *zap.Logger

	mu     sync.Mutex
	pages  []mailPage
	loaded bool
	load   func(ctx context.Context) ([]rawMail, error)
}

func NewMailbox(opts MailboxOptions, log *zap.Logger) (*Mailbox, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Host == "" || opts.Username == "" {
		return nil, errors.New("mailbox fetch needs fetch.mailbox.imap_host and username")
	}
	if opts.Port == 0 {
		opts.Port = 993
	}
	if opts.Mailbox == "" {
		opts.Mailbox = "INBOX"
	}
	if opts.SinceDays <= 0 {
		opts.SinceDays = 30
	}
	if opts.Password == "" {
		pw, err := secrets.GetIMAPPassword(secrets.IMAPKeyringAccount(opts.Username, opts.Host))
		if err != nil {
			return nil, err
		}
		opts.Password = pw
	}

	m := &Mailbox{opts: opts, log: log.Named("mailbox")}
	m.load = m.download
	return m, nil
}

func (m *Mailbox) Name() string { return "mailbox" }

func (m *Mailbox) Close() error { return nil }

func (m *Mailbox) Fetch(ctx context.Context, q Query) ([]domain.RawFragment, error) {
	pages, err := m.messages(ctx)
	if err != nil {
		return nil, err
	}

	all := q
	all.Limit = 0

	var out []domain.RawFragment
	for _, p := range pages {
		var frags []domain.RawFragment
		if p.html != "" {
			frags, err = SplitCards(p.html, m.opts.CardSelector, all, p.date.UTC())
			if err != nil {
				m.log.Warn("skip unparsable message", zap.Error(err))
				continue
			}
		} else {
			frags = SplitText(p.text, all, p.date.UTC())
		}
		for _, f := range frags {
			if !mentionsCity(f, q.City) {
				continue
			}
			out = append(out, f)
			if q.Limit > 0 && len(out) >= q.Limit {
				return out, nil
			}
		}
	}
	return out, nil
}

func (m *Mailbox) messages(ctx context.Context) ([]mailPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loaded {
		return m.pages, nil
	}

	raw, err := m.load(ctx)
	if err != nil {
		return nil, err
	}
	m.pages = make([]mailPage, 0, len(raw))
	for _, r := range raw {
		m.pages = append(m.pages, parseMail(r))
	}
	m.loaded = true
	m.log.Info("messages loaded", zap.Int("count", len(m.pages)))
	return m.pages, nil
}

func (m *Mailbox) download(ctx context.Context) ([]rawMail, error) {
	if m.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.opts.Timeout)
		defer cancel()
	}
	addr := net.JoinHostPort(m.opts.Host, strconv.Itoa(m.opts.Port))
	c, err := dialAndLogin(ctx, addr, m.opts.Host, m.opts.Username, m.opts.Password)
	if err != nil {
		return nil, err
	}
	defer logoutAndClose(c, m.log)

	since := time.Now().AddDate(0, 0, -m.opts.SinceDays)
	raw, err := fetchRecent(ctx, c, m.opts.Mailbox, m.opts.MaxMessages, since)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", m.opts.Mailbox, err)
	}
	return raw, nil
}
