package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ErrIncompleteTriple is returned when a write would persist only part of
// the session triple.
var ErrIncompleteTriple = errors.New("incomplete session triple")

// ErrProfileCorrupt is returned when the stored profile blob is not valid JSON.
var ErrProfileCorrupt = errors.New("stored profile corrupt")

// Storage key suffixes. The full key is "<prefix>:<suffix>".
const (
	keyToken    = "auth_token"
	keyProfile  = "user_profile"
	keyUserType = "user_type"
)

const defaultKeyPrefix = "ng"

const storeTripleScript = `
redis.call("SET", KEYS[1], ARGV[1])
redis.call("SET", KEYS[2], ARGV[2])
redis.call("SET", KEYS[3], ARGV[3])
return 1
`

const clearTripleScript = `
local removed = 0
for i = 1, #KEYS do
  removed = removed + redis.call("DEL", KEYS[i])
end
return removed
`

var (
	storeTripleLua = redis.NewScript(storeTripleScript)
	clearTripleLua = redis.NewScript(clearTripleScript)
)

// Profile is the role-specific user mapping attached to a session. It is
// opaque to the session core beyond carrying an id.
type Profile map[string]any

// ID returns the profile's id field, tolerating the numeric form JSON
// decoding produces.
func (p Profile) ID() string {
	if p == nil {
		return ""
	}
	switch v := p["id"].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	case int:
		return strconv.Itoa(v)
	default:
		return ""
	}
}

// Triple is one consistent read of the persisted session state.
type Triple struct {
	Token    string
	Profile  Profile
	UserType string
}

// Complete reports whether all three fields are present. A partial triple
// is treated as "not authenticated" everywhere.
func (t Triple) Complete() bool {
	return t.Token != "" && len(t.Profile) > 0 && t.UserType != ""
}

// Partial reports whether some but not all fields are present.
func (t Triple) Partial() bool {
	empty := t.Token == "" && len(t.Profile) == 0 && t.UserType == ""
	return !empty && !t.Complete()
}

// TokenBinder mirrors the stored token into the shared HTTP client's
// default Authorization header.
type TokenBinder interface {
	SetAuthToken(token string)
	ClearAuthToken()
}

// NoOpBinder is a TokenBinder that does nothing.
type NoOpBinder struct{}

// SetAuthToken describes the setauthtoken operation and its observable behavior.
func (NoOpBinder) SetAuthToken(string) {}

// ClearAuthToken describes the clearauthtoken operation and its observable behavior.
func (NoOpBinder) ClearAuthToken() {}

// Store defines a public type used by navguard APIs.
//
// Store instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Store struct {
	rdb    *redis.Client
	prefix string
	binder TokenBinder
	log    zerolog.Logger
}

// New describes the new operation and its observable behavior.
//
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New(rdb *redis.Client, prefix string, binder TokenBinder, log zerolog.Logger) *Store {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	if binder == nil {
		binder = NoOpBinder{}
	}
	return &Store{
		rdb:    rdb,
		prefix: prefix,
		binder: binder,
		log:    log,
	}
}

func (s *Store) key(suffix string) string {
	return s.prefix + ":" + suffix
}

func (s *Store) keys() []string {
	return []string{s.key(keyToken), s.key(keyProfile), s.key(keyUserType)}
}

// Token returns the stored bearer token, or "" when absent.
func (s *Store) Token(ctx context.Context) (string, error) {
	val, err := s.rdb.Get(ctx, s.key(keyToken)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read auth token: %w", err)
	}
	return val, nil
}

// UserType returns the stored user-type value, or "" when absent.
func (s *Store) UserType(ctx context.Context) (string, error) {
	val, err := s.rdb.Get(ctx, s.key(keyUserType)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read user type: %w", err)
	}
	return val, nil
}

// Profile returns the stored profile mapping, or nil when absent.
func (s *Store) Profile(ctx context.Context) (Profile, error) {
	raw, err := s.rdb.Get(ctx, s.key(keyProfile)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read user profile: %w", err)
	}
	return decodeProfile(raw)
}

// Triple reads all three session fields in one MGET.
func (s *Store) Triple(ctx context.Context) (Triple, error) {
	vals, err := s.rdb.MGet(ctx, s.keys()...).Result()
	if err != nil {
		return Triple{}, fmt.Errorf("read session triple: %w", err)
	}

	var out Triple
	if v, ok := vals[0].(string); ok {
		out.Token = v
	}
	if v, ok := vals[1].(string); ok && v != "" {
		profile, err := decodeProfile(v)
		if err != nil {
			return Triple{}, err
		}
		out.Profile = profile
	}
	if v, ok := vals[2].(string); ok {
		out.UserType = v
	}
	return out, nil
}

// StoreAuthData persists token, profile, and user type atomically and
// propagates the token to the binder. Writes that would leave a partial
// triple are rejected with [ErrIncompleteTriple].
func (s *Store) StoreAuthData(ctx context.Context, token string, profile Profile, userType string) error {
	if token == "" || len(profile) == 0 || userType == "" {
		return ErrIncompleteTriple
	}

	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode user profile: %w", err)
	}

	if err := storeTripleLua.Run(ctx, s.rdb, s.keys(), token, payload, userType).Err(); err != nil {
		return fmt.Errorf("store session triple: %w", err)
	}

	s.binder.SetAuthToken(token)
	s.log.Debug().Str("user_type", userType).Msg("session triple stored")
	return nil
}

// ClearAuthData removes all three session keys atomically and clears the
// binder. The binder is cleared first so the transport never keeps a token
// the store failed to delete. Clearing an already-empty store succeeds.
func (s *Store) ClearAuthData(ctx context.Context) error {
	s.binder.ClearAuthToken()

	if err := clearTripleLua.Run(ctx, s.rdb, s.keys()).Err(); err != nil {
		return fmt.Errorf("clear session triple: %w", err)
	}

	s.log.Debug().Msg("session triple cleared")
	return nil
}

func decodeProfile(raw string) (Profile, error) {
	var profile Profile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProfileCorrupt, err)
	}
	return profile, nil
}
