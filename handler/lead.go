package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	reserbox "github.com/reserbox/reserbox"
	"github.com/reserbox/reserbox/notify"
)

// maxLeadListSize caps the admin listing.
const maxLeadListSize = 100

// notifyTimeout bounds the fire-and-forget operator notification, which runs
// detached from the request context.
const notifyTimeout = 15 * time.Second

var errInternal = errors.New("could not process the request")

type LeadHandler struct {
	service  reserbox.LeadService
	notifier notify.Notifier
	log      *zap.SugaredLogger
}

func NewLeadHandler(service reserbox.LeadService, notifier notify.Notifier, log *zap.SugaredLogger) *LeadHandler {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &LeadHandler{
		service:  service,
		notifier: notifier,
		log:      log,
	}
}

// Create accepts a contact-form submission. Validation runs before any
// persistence, duplicates inside the dedup window are rejected with a
// conflict, and the operator notification is spawned only after the outcome
// has been decided.
func (lh LeadHandler) Create(rw http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var nl reserbox.NewLead
	if err := decode(r, &nl); err != nil {
		lh.log.Errorw("leads.Create", "error", err.Error())
		respondErr(ctx, rw, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	if err := nl.Validate(); err != nil {
		respondErr(ctx, rw, http.StatusBadRequest, err)
		return
	}

	lead := nl.Lead(uuid.NewString(), time.Now().UTC())

	if err := lh.service.Create(ctx, lead); err != nil {
		switch {
		case errors.Is(err, reserbox.ErrDuplicateLead):
			respondErr(ctx, rw, http.StatusConflict, err)
		default:
			lh.log.Errorw("leads.Create", "error", err.Error())
			respondErr(ctx, rw, http.StatusInternalServerError, errInternal)
		}
		return
	}

	// The response is decided; the operator alert must not change it. Any
	// delivery failure is logged and dropped.
	go func() {
		nctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := lh.notifier.Notify(nctx, lead); err != nil {
			lh.log.Errorw("leads.notify", "error", err.Error(), "lead_id", lead.ID)
		}
	}()

	respond(ctx, rw, http.StatusCreated, map[string]string{"id": lead.ID})
}

// List returns up to 100 most-recent leads, optionally filtered by status.
// Intended for internal consumption.
func (lh LeadHandler) List(rw http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := r.URL.Query().Get("status")

	leads, err := lh.service.List(ctx, status, maxLeadListSize)
	if err != nil {
		lh.log.Errorw("leads.List", "error", err.Error())
		respondErr(ctx, rw, http.StatusInternalServerError, errInternal)
		return
	}

	respond(ctx, rw, http.StatusOK, leads)
}
