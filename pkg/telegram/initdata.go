package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

const webAppDataKey = "WebAppData"

var ErrNoUser = errors.New("init data carries no user")

// User is the Telegram user embedded in Web App init data
type User struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
}

// IDString returns the user id in the form used as game state key
func (u User) IDString() string {
	return strconv.FormatInt(u.ID, 10)
}

// VerifyInitData checks the hash Telegram attached to Web App init data.
// The secret is HMAC-SHA256("WebAppData", botToken); the signed payload is every
// other field as sorted key=value lines.
func VerifyInitData(initData, botToken string) bool {
	if initData == "" || botToken == "" {
		return false
	}

	values, err := url.ParseQuery(initData)
	if err != nil {
		return false
	}

	expected, err := hex.DecodeString(values.Get("hash"))
	if err != nil || len(expected) == 0 {
		return false
	}
	values.Del("hash")

	return hmac.Equal(signInitData(values, botToken), expected)
}

// SignInitData returns init data for fields signed with botToken, as Telegram would produce it
func SignInitData(fields map[string]string, botToken string) string {
	values := url.Values{}
	for k, v := range fields {
		values.Set(k, v)
	}
	values.Set("hash", hex.EncodeToString(signInitData(values, botToken)))
	return values.Encode()
}

func signInitData(values url.Values, botToken string) []byte {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+"="+values.Get(k))
	}

	secret := hmac.New(sha256.New, []byte(webAppDataKey))
	secret.Write([]byte(botToken))

	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(strings.Join(lines, "\n")))
	return mac.Sum(nil)
}

// ParseUser extracts the user object from init data. It does not verify the signature.
func ParseUser(initData string) (*User, error) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse init data: %w", err)
	}

	raw := values.Get("user")
	if raw == "" {
		return nil, ErrNoUser
	}

	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	if user.ID == 0 {
		return nil, ErrNoUser
	}
	return &user, nil
}
