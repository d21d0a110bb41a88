package navguard

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dineflow/navguard/route"
	"github.com/dineflow/navguard/store"
	"github.com/dineflow/navguard/token"
)

// Audit event types emitted by the Controller.
const (
	auditEventSessionStored    = "session_stored"
	auditEventSessionCleared   = "session_cleared"
	auditEventSessionExpired   = "session_expired"
	auditEventTokenUndecodable = "token_undecodable"
	auditEventLogout           = "logout"
	auditEventStorageFailure   = "storage_failure"
)

// Controller owns the session lifecycle: it is the only writer of the
// persisted session triple, and the guards consult it on every navigation
// event, back press, and screen mount.
//
// Controller instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Controller struct {
	config    Config
	store     *store.Store
	inspector *token.Inspector
	router    Router
	alerter   Alerter
	audit     *auditDispatcher
	metrics   *Metrics
	log       zerolog.Logger

	// mu serializes all session mutations so overlapping store/clear calls
	// cannot interleave and expose a partial triple.
	mu    sync.Mutex
	state AuthState
}

// Close describes the close operation and its observable behavior.
func (c *Controller) Close() {
	if c == nil {
		return
	}
	if c.audit != nil {
		c.audit.Close()
	}
}

// AuditDropped describes the auditdropped operation and its observable behavior.
func (c *Controller) AuditDropped() uint64 {
	if c == nil || c.audit == nil {
		return 0
	}
	return c.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
func (c *Controller) MetricsSnapshot() MetricsSnapshot {
	if c == nil || c.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return c.metrics.Snapshot()
}

// State returns the Controller's lifecycle state as of the last mutating
// operation.
func (c *Controller) State() AuthState {
	if c == nil {
		return StateUnauthenticated
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) metricInc(id MetricID) {
	if c == nil || c.metrics == nil {
		return
	}
	c.metrics.Inc(id)
}

// InitializeAuth reads the stored session on app start and validates the
// token silently: an expired session is cleared without alert or redirect.
// Idempotent — safe to call on every mount.
func (c *Controller) InitializeAuth(ctx context.Context) AuthState {
	if c == nil {
		return StateUnauthenticated
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.metricInc(MetricInitialize)

	triple, err := c.store.Triple(ctx)
	if err != nil {
		// Corrupt or unreachable storage: degrade to unauthenticated and
		// clear whatever is left so later reads agree.
		c.log.Error().Err(err).Msg("session read failed during initialize")
		c.metricInc(MetricStorageFailure)
		c.emitAudit(ctx, auditEventStorageFailure, false, "", "", "", err, nil)
		c.clearLocked(ctx, "initialize_read_failed")
		c.state = StateUnauthenticated
		return c.state
	}

	if !triple.Complete() {
		if triple.Partial() {
			c.clearLocked(ctx, "partial_triple")
		}
		c.state = StateUnauthenticated
		return c.state
	}

	verdict := c.inspector.Inspect(triple.Token)
	switch verdict.Outcome {
	case token.OutcomeExpired, token.OutcomeMissing:
		c.metricInc(MetricSessionExpired)
		c.emitAudit(ctx, auditEventSessionExpired, false, triple.Profile.ID(), triple.UserType, "", nil, func() map[string]string {
			return map[string]string{"silent": "true"}
		})
		c.clearLocked(ctx, "expired_on_initialize")
		c.state = StateUnauthenticated
	case token.OutcomeUndecodable:
		// Fail-open: decode failure must not log the user out.
		c.metricInc(MetricTokenUndecodable)
		c.log.Warn().Msg("stored token undecodable, keeping session")
		c.state = StateAuthenticated
	default:
		c.state = StateAuthenticated
	}

	return c.state
}

// IsAuthenticated reports whether all three session fields are present.
// It does not re-check expiry; that is [Controller.ValidateAndRefresh]'s job.
func (c *Controller) IsAuthenticated(ctx context.Context) bool {
	if c == nil {
		return false
	}

	triple, err := c.store.Triple(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("session read failed")
		c.metricInc(MetricStorageFailure)
		return false
	}
	return triple.Complete()
}

// UserType returns the persisted user type. The second return is false when
// no recognized type is stored or the read fails.
func (c *Controller) UserType(ctx context.Context) (UserType, bool) {
	if c == nil {
		return "", false
	}

	raw, err := c.store.UserType(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("user type read failed")
		c.metricInc(MetricStorageFailure)
		return "", false
	}
	return ParseUserType(raw)
}

// Profile returns the persisted user profile, or false when absent or
// unreadable.
func (c *Controller) Profile(ctx context.Context) (Profile, bool) {
	if c == nil {
		return nil, false
	}

	profile, err := c.store.Profile(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("profile read failed")
		c.metricInc(MetricStorageFailure)
		return nil, false
	}
	if len(profile) == 0 {
		return nil, false
	}
	return profile, true
}

// StoreAuthData persists the session triple produced by a successful login
// call. Returns false when persistence fails; the caller must treat false
// as "not logged in".
func (c *Controller) StoreAuthData(ctx context.Context, tok string, profile Profile, userType UserType) bool {
	if c == nil {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.StoreAuthData(ctx, tok, profile, string(userType)); err != nil {
		c.log.Error().Err(err).Msg("session store failed")
		c.metricInc(MetricStorageFailure)
		c.emitAudit(ctx, auditEventStorageFailure, false, profile.ID(), string(userType), "", err, nil)
		return false
	}

	c.state = StateAuthenticated
	c.metricInc(MetricSessionStored)
	c.emitAudit(ctx, auditEventSessionStored, true, profile.ID(), string(userType), "", nil, nil)
	return true
}

// ClearAuthData removes the session triple. Clearing an empty session
// succeeds.
func (c *Controller) ClearAuthData(ctx context.Context) bool {
	if c == nil {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clearLocked(ctx, "explicit")
}

// ValidateAndRefresh re-inspects the stored token. Expired or missing
// tokens clear the session and, when showAlert is set, surface the
// session-expired notice and redirect to the matching login screen.
// Undecodable tokens are kept (fail-open). Returns token validity.
func (c *Controller) ValidateAndRefresh(ctx context.Context, showAlert bool) bool {
	if c == nil {
		return false
	}

	start := time.Now()
	defer func() {
		if c.metrics != nil {
			c.metrics.Observe(MetricValidateLatency, time.Since(start))
		}
	}()

	c.mu.Lock()
	defer c.mu.Unlock()

	triple, err := c.store.Triple(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("session read failed during validate")
		c.metricInc(MetricStorageFailure)
		c.metricInc(MetricValidateFailure)
		c.emitAudit(ctx, auditEventStorageFailure, false, "", "", "", err, nil)
		c.invalidateLocked(ctx, "", showAlert, c.config.Alerts.InvalidSessionMessage, c.config.Alerts.InvalidSessionTitle)
		return false
	}

	if !triple.Complete() {
		c.metricInc(MetricValidateFailure)
		c.invalidateLocked(ctx, triple.UserType, showAlert, c.config.Alerts.InvalidSessionMessage, c.config.Alerts.InvalidSessionTitle)
		return false
	}

	verdict := c.inspector.Inspect(triple.Token)
	switch verdict.Outcome {
	case token.OutcomeValid:
		c.metricInc(MetricValidateSuccess)
		return true
	case token.OutcomeUndecodable:
		c.metricInc(MetricTokenUndecodable)
		c.log.Warn().Msg("stored token undecodable, treating as valid")
		c.emitAudit(ctx, auditEventTokenUndecodable, true, triple.Profile.ID(), triple.UserType, "", nil, nil)
		return true
	default:
		c.metricInc(MetricSessionExpired)
		c.metricInc(MetricValidateFailure)
		c.emitAudit(ctx, auditEventSessionExpired, false, triple.Profile.ID(), triple.UserType, "", nil, nil)
		c.invalidateLocked(ctx, triple.UserType, showAlert, c.config.Alerts.SessionExpiredMessage, c.config.Alerts.SessionExpiredTitle)
		return false
	}
}

// Logout clears the session and redirects to the login screen of the
// previous user type: customers to the customer login, everyone else
// (including unknown) to the staff login.
func (c *Controller) Logout(ctx context.Context) bool {
	if c == nil {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.logoutLocked(ctx, "")
}

// invalidateLocked clears the session and, when showAlert is set, surfaces
// the notice and performs the logout redirect. Callers hold c.mu.
func (c *Controller) invalidateLocked(ctx context.Context, prevType string, showAlert bool, message, title string) {
	if showAlert {
		c.alerter.Error(message, title)
		c.metricInc(MetricAlertShown)
		c.logoutLocked(ctx, prevType)
		return
	}
	c.clearLocked(ctx, "invalidated")
}

// logoutLocked clears the session and redirects. prevType may carry a
// user type read before the caller cleared anything; when empty the type is
// read from the store before clearing. Callers hold c.mu.
func (c *Controller) logoutLocked(ctx context.Context, prevType string) bool {
	if prevType == "" {
		raw, err := c.store.UserType(ctx)
		if err != nil {
			c.log.Warn().Err(err).Msg("user type unavailable during logout")
		}
		prevType = raw
	}

	ok := c.clearLocked(ctx, "logout")

	dest := route.StaffLogin
	if t, valid := ParseUserType(prevType); valid && t == UserCustomer {
		dest = route.CustomerLogin
	}
	if c.router != nil {
		c.router.Replace(dest)
	}

	c.metricInc(MetricLogout)
	c.emitAudit(ctx, auditEventLogout, ok, "", prevType, dest, nil, func() map[string]string {
		return map[string]string{"redirect": dest}
	})
	return ok
}

// clearLocked removes the triple and marks the controller unauthenticated
// regardless of storage outcome. Callers hold c.mu.
func (c *Controller) clearLocked(ctx context.Context, reason string) bool {
	c.state = StateUnauthenticated

	if err := c.store.ClearAuthData(ctx); err != nil {
		c.log.Error().Err(err).Str("reason", reason).Msg("session clear failed")
		c.metricInc(MetricStorageFailure)
		c.emitAudit(ctx, auditEventStorageFailure, false, "", "", "", err, nil)
		return false
	}

	c.metricInc(MetricSessionCleared)
	c.emitAudit(ctx, auditEventSessionCleared, true, "", "", "", nil, func() map[string]string {
		return map[string]string{"reason": reason}
	})
	return true
}

// RecordGuardEvent emits an audit event for a navigation or render decision
// taken by a guard on top of this Controller. path is the route the decision
// concerned; metadata typically carries the redirect target or reason.
// No-op when auditing is disabled.
func (c *Controller) RecordGuardEvent(ctx context.Context, eventType, path, userType string, metadata map[string]string) {
	if c == nil || c.audit == nil {
		return
	}
	meta := func() map[string]string { return metadata }
	if metadata == nil {
		meta = nil
	}
	c.emitAudit(ctx, eventType, true, "", userType, path, nil, meta)
}

func (c *Controller) emitAudit(ctx context.Context, eventType string, success bool, userID, userType, path string, failure error, meta func() map[string]string) {
	if c == nil || c.audit == nil {
		return
	}

	event := AuditEvent{
		EventID:   uuid.NewString(),
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		UserID:    userID,
		UserType:  userType,
		Path:      path,
		DeviceID:  deviceIDFromContext(ctx),
		Success:   success,
	}
	if failure != nil {
		event.Error = failure.Error()
	}
	if meta != nil {
		event.Metadata = meta()
	}
	if version := appVersionFromContext(ctx); version != "" {
		if event.Metadata == nil {
			event.Metadata = make(map[string]string, 1)
		}
		event.Metadata["app_version"] = version
	}

	c.audit.Emit(ctx, event)
}
