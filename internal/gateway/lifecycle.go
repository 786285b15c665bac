package gateway

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/vedran77/taskmate/internal/domain"
	"github.com/vedran77/taskmate/internal/repository"
	"github.com/vedran77/taskmate/pkg/validator"
	"go.uber.org/zap"
)

// EventNames binds one workflow to its wire protocol: the inbound event
// names, their paired success/error outbound names, and the payload keys
// that differ between workflows.
type EventNames struct {
	List        string
	ListOK      string
	ListError   string
	Send        string
	SendOK      string
	SendError   string
	Accept      string
	AcceptOK    string
	AcceptError string
	Delete      string
	DeleteOK    string
	DeleteError string

	// Best-effort pushes to the counterpart user.
	PeerNew     string
	PeerUpdated string
	PeerRemoved string

	// IDField is the payload key carrying the record id on accept/delete.
	IDField string
	// RecordField is the payload key carrying the record in SendOK.
	RecordField string
	// EmptyMessage is reported when a list matches nothing.
	EmptyMessage string
	// NotFoundMessage is reported when accept/delete misses.
	NotFoundMessage string
}

// Codec translates between a workflow's wire payloads and its record type.
// Implementations never mutate the payload they are given.
type Codec[T domain.Request] interface {
	// BuildCreate validates the send payload and assembles a pending
	// record with a freshly generated id.
	BuildCreate(sess Session, payload json.RawMessage) (*T, validator.Errors)
	// ParseFilters validates an optional filter object.
	ParseFilters(payload json.RawMessage) (repository.RequestFilters, validator.Errors)
	// Counterpart returns the user on the other side of the record.
	Counterpart(rec *T, viewer uuid.UUID) uuid.UUID
}

// Lifecycle implements the four relationship operations for one workflow.
// It is stateless and shared by all connections; Register binds it to a
// single connection's session and emitter.
type Lifecycle[T domain.Request] struct {
	names EventNames
	repo  repository.RequestRepository[T]
	codec Codec[T]
	peers PeerNotifier
	log   *zap.Logger
}

func NewLifecycle[T domain.Request](
	names EventNames,
	repo repository.RequestRepository[T],
	codec Codec[T],
	peers PeerNotifier,
	log *zap.Logger,
) *Lifecycle[T] {
	return &Lifecycle[T]{
		names: names,
		repo:  repo,
		codec: codec,
		peers: peers,
		log:   log,
	}
}

// Register installs this workflow's handlers on a connection router.
func (l *Lifecycle[T]) Register(r *Router, sess Session, emit Emitter) {
	r.Handle(l.names.List, func(ctx context.Context, payload json.RawMessage) {
		l.list(ctx, payload, emit)
	})
	r.Handle(l.names.Send, func(ctx context.Context, payload json.RawMessage) {
		l.send(ctx, sess, payload, emit)
	})
	r.Handle(l.names.Accept, func(ctx context.Context, payload json.RawMessage) {
		l.accept(ctx, sess, payload, emit)
	})
	r.Handle(l.names.Delete, func(ctx context.Context, payload json.RawMessage) {
		l.delete(ctx, sess, payload, emit)
	})
}

func (l *Lifecycle[T]) list(ctx context.Context, payload json.RawMessage, emit Emitter) {
	filters, errs := l.codec.ParseFilters(payload)
	if errs.HasErrors() {
		emit.Emit(l.names.ListError, ErrorPayload{Message: "Validation failed", Details: errs})
		return
	}

	recs, err := l.repo.List(ctx, filters)
	if err != nil {
		l.storageError(l.names.ListError, l.names.List, err, emit)
		return
	}
	// An empty result is reported as an error, not a silent success. The
	// client relies on this.
	if len(recs) == 0 {
		emit.Emit(l.names.ListError, ErrorPayload{Message: l.names.EmptyMessage})
		return
	}

	emit.Emit(l.names.ListOK, recs)
}

func (l *Lifecycle[T]) send(ctx context.Context, sess Session, payload json.RawMessage, emit Emitter) {
	rec, errs := l.codec.BuildCreate(sess, payload)
	if errs.HasErrors() {
		emit.Emit(l.names.SendError, ErrorPayload{Message: "Validation failed", Details: errs})
		return
	}

	// Generation and shape validation are independent steps: reject before
	// persisting if the generated id somehow fails the check.
	if !validator.IsUUID((*rec).RequestID().String()) {
		emit.Emit(l.names.SendError, ErrorPayload{Message: "Could not generate a valid request id"})
		return
	}

	created, err := l.repo.Create(ctx, rec)
	if err != nil {
		l.storageError(l.names.SendError, l.names.Send, err, emit)
		return
	}
	if created == nil {
		emit.Emit(l.names.SendError, ErrorPayload{Message: "The request could not be saved", Error: ErrCodeStorage})
		return
	}

	emit.Emit(l.names.SendOK, map[string]any{"success": true, l.names.RecordField: created})
	l.notifyPeer(l.names.PeerNew, created, sess.UserID)
}

func (l *Lifecycle[T]) accept(ctx context.Context, sess Session, payload json.RawMessage, emit Emitter) {
	id, errs := parseID(payload, l.names.IDField)
	if errs.HasErrors() {
		emit.Emit(l.names.AcceptError, ErrorPayload{Message: "Validation failed", Details: errs})
		return
	}

	rec, err := l.repo.Accept(ctx, id)
	if err != nil {
		l.storageError(l.names.AcceptError, l.names.Accept, err, emit)
		return
	}
	if rec == nil {
		emit.Emit(l.names.AcceptError, ErrorPayload{Message: l.names.NotFoundMessage, Error: ErrCodeNotFound})
		return
	}

	emit.Emit(l.names.AcceptOK, map[string]any{"success": true, "result": rec})
	l.notifyPeer(l.names.PeerUpdated, rec, sess.UserID)
}

func (l *Lifecycle[T]) delete(ctx context.Context, sess Session, payload json.RawMessage, emit Emitter) {
	id, errs := parseID(payload, l.names.IDField)
	if errs.HasErrors() {
		emit.Emit(l.names.DeleteError, ErrorPayload{Message: "Validation failed", Details: errs})
		return
	}

	// Read first so the counterpart can still be told what disappeared.
	// The Delete affected-row check below stays the authority on success.
	rec, err := l.repo.GetByID(ctx, id)
	if err != nil {
		l.storageError(l.names.DeleteError, l.names.Delete, err, emit)
		return
	}

	deleted, err := l.repo.Delete(ctx, id)
	if err != nil {
		l.storageError(l.names.DeleteError, l.names.Delete, err, emit)
		return
	}
	if !deleted {
		emit.Emit(l.names.DeleteError, ErrorPayload{Message: l.names.NotFoundMessage, Error: ErrCodeNotFound})
		return
	}

	emit.Emit(l.names.DeleteOK, map[string]any{"success": true, "result": true})
	if rec != nil {
		l.notifyPeer(l.names.PeerRemoved, rec, sess.UserID)
	}
}

func (l *Lifecycle[T]) storageError(errEvent, inbound string, err error, emit Emitter) {
	l.log.Error("repository call failed", zap.String("event", inbound), zap.Error(err))
	emit.Emit(errEvent, ErrorPayload{Message: "Something went wrong", Error: ErrCodeStorage})
}

func (l *Lifecycle[T]) notifyPeer(event string, rec *T, actor uuid.UUID) {
	if l.peers == nil || event == "" {
		return
	}
	peer := l.codec.Counterpart(rec, actor)
	if peer == uuid.Nil || peer == actor {
		return
	}
	l.peers.NotifyUser(peer, event, rec)
}

func parseID(payload json.RawMessage, field string) (uuid.UUID, validator.Errors) {
	var errs validator.Errors

	var in map[string]string
	if err := validator.DecodeObject(payload, &in); err != nil {
		errs.Add(field, "malformed payload")
		return uuid.Nil, errs
	}

	validator.UUID(field, in[field], &errs)
	if errs.HasErrors() {
		return uuid.Nil, errs
	}
	return uuid.MustParse(in[field]), nil
}
