package ws

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/vedran77/taskmate/internal/gateway"
	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

// accessTokenRegex pulls the access token out of the handshake Cookie
// header. A pattern match is all the contract asks for, not a full cookie
// parse.
var accessTokenRegex = regexp.MustCompile(`access_token=([^;\s]+)`)

var (
	errNoToken      = errors.New("no access token cookie in handshake")
	errInvalidToken = errors.New("invalid or expired access token")
)

// ServeWS upgrades the connection, authenticates it once from the
// access_token cookie, and binds the workflow handlers. Auth failure is
// terminal: the client gets a single auth_error event and the connection
// is closed. Reconnecting with a fresh token is the only retry path.
func ServeWS(hub *Hub, jwtSecret string, registrars []gateway.Registrar, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true, // Allow any origin (dev mode)
		})
		if err != nil {
			log.Warn("ws accept error", zap.Error(err))
			return
		}

		sess, err := authenticate(r.Header, jwtSecret)
		if err != nil {
			rejectConn(conn, err, log)
			return
		}

		client := NewClient(hub, conn, sess, log)
		client.bind(registrars)
		hub.register(client)

		ctx := context.WithoutCancel(r.Context())
		go client.WritePump(ctx)
		go client.ReadPump(ctx)
	}
}

// authenticate runs once per connection. The resulting session is trusted
// for the full connection lifetime; the token is never re-verified.
func authenticate(header http.Header, jwtSecret string) (gateway.Session, error) {
	m := accessTokenRegex.FindStringSubmatch(header.Get("Cookie"))
	if m == nil {
		return gateway.Session{}, errNoToken
	}

	userID, claims, err := verifyToken(m[1], jwtSecret)
	if err != nil {
		return gateway.Session{}, errInvalidToken
	}

	return gateway.Session{
		UserID:      userID,
		Claims:      claims,
		ConnectedAt: time.Now(),
	}, nil
}

func verifyToken(tokenStr, secret string) (uuid.UUID, map[string]any, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return uuid.Nil, nil, errInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, nil, jwt.ErrTokenInvalidClaims
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return uuid.Nil, nil, err
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, nil, err
	}
	return userID, claims, nil
}

// rejectConn emits exactly one auth_error event and force-closes.
func rejectConn(conn *websocket.Conn, cause error, log *zap.Logger) {
	log.Warn("ws auth failed", zap.Error(cause))

	evt, err := NewEvent(EventTypeAuthError, AuthErrorPayload{Message: cause.Error()})
	if err == nil {
		ctx, cancel := context.WithTimeout(context.Background(), writeWait)
		_ = wsjson.Write(ctx, conn, evt)
		cancel()
	}
	conn.Close(websocket.StatusPolicyViolation, "authentication failed")
}
