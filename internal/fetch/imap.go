package fetch

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
	"go.uber.org/zap"
)

// dialAndLogin connects over TLS and logs in. The connection is closed when
// ctx ends.
func dialAndLogin(ctx context.Context, addr, host, username, password string) (*imapclient.Client, error) {
	if username == "" || password == "" {
		return nil, errors.New("imap username/password is required")
	}
	c, err := imapclient.DialTLS(addr, &imapclient.Options{
		TLSConfig: &tls.Config{MinVersion: tls.VersionTLS12, ServerName: host},
	})
	if err != nil {
		return nil, fmt.Errorf("imap dial tls: %w", err)
	}

	go func() {
		<-ctx.Done()
		_ = c.Close()
	}()

	if err := c.Login(username, password).Wait(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("imap login: %w", err)
	}
	return c, nil
}

// fetchRecent returns the raw RFC822 bytes of up to max messages newer than
// since, newest first. BODY.PEEK[] leaves \Seen alone.
func fetchRecent(ctx context.Context, c *imapclient.Client, mailbox string, max int, since time.Time) ([]rawMail, error) {
	if _, err := c.Select(mailbox, &imap.SelectOptions{ReadOnly: true}).Wait(); err != nil {
		return nil, fmt.Errorf("imap select %s: %w", mailbox, err)
	}

	searchData, err := c.UIDSearch(&imap.SearchCriteria{Since: since}, nil).Wait()
	if err != nil {
		return nil, fmt.Errorf("imap uid search: %w", err)
	}
	uids := searchData.AllUIDs()
	if len(uids) == 0 {
		return nil, nil
	}
	slices.Reverse(uids)
	if max > 0 && len(uids) > max {
		uids = uids[:max]
	}

	bodyAll := &imap.FetchItemBodySection{Specifier: imap.PartSpecifierNone, Peek: true}
	fetchCmd := c.Fetch(imap.UIDSetNum(uids...), &imap.FetchOptions{
		UID:          true,
		InternalDate: true,
		BodySection:  []*imap.FetchItemBodySection{bodyAll},
	})
	defer func() { _ = fetchCmd.Close() }()

	out := make([]rawMail, 0, len(uids))
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		msgData := fetchCmd.Next()
		if msgData == nil {
			break
		}
		buf, err := msgData.Collect()
		if err != nil {
			return nil, fmt.Errorf("imap fetch collect: %w", err)
		}
		if b := buf.FindBodySection(bodyAll); b != nil {
			out = append(out, rawMail{date: buf.InternalDate, body: append([]byte(nil), b...)})
		}
	}
	if err := fetchCmd.Close(); err != nil {
		return nil, fmt.Errorf("imap fetch close: %w", err)
	}
	return out, nil
}

func logoutAndClose(c *imapclient.Client, log *zap.Logger) {
	if c == nil {
		return
	}
	if err := c.Logout().Wait(); err != nil {
		log.Debug("imap logout", zap.Error(err))
	}
	_ = c.Close()
}
