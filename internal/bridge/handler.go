package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sam-fakhreddine/aws-containers-sub004/internal/console"
	"github.com/sam-fakhreddine/aws-containers-sub004/internal/profiles"
	"github.com/sam-fakhreddine/aws-containers-sub004/models"
)

// Request is the envelope for every message from the extension.
type Request struct {
	Action       string   `json:"action"`
	ProfileName  string   `json:"profileName,omitempty"`
	ProfileNames []string `json:"profileNames,omitempty"`
	Region       string   `json:"region,omitempty"`
	Destination  string   `json:"destination,omitempty"`
}

type profileListResponse struct {
	Action   string           `json:"action"`
	Profiles []models.Profile `json:"profiles"`
	Warnings []string         `json:"warnings,omitempty"`
}

type consoleURLResponse struct {
	Action      string `json:"action"`
	URL         string `json:"url"`
	ProfileName string `json:"profileName"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
}

type errorResponse struct {
	Action  string `json:"action"`
	Message string `json:"message"`
}

func newError(format string, args ...any) errorResponse {
	return errorResponse{Action: "error", Message: fmt.Sprintf(format, args...)}
}

// ProfileSource is the aggregator surface the handler depends on.
type ProfileSource interface {
	List(ctx context.Context, enrichSSO bool) ([]models.Profile, []string)
	Resolve(ctx context.Context, name string) (*profiles.Resolved, error)
}

// URLSource is the console generator surface the handler depends on.
type URLSource interface {
	ConsoleURL(ctx context.Context, res *profiles.Resolved, region, destination string) (string, error)
}

// Handler dispatches extension requests to the aggregator and the console
// URL generator. Every failure becomes a structured error response so the
// extension keeps running; only frame-level protocol errors are fatal and
// those never reach this layer.
type Handler struct {
	source ProfileSource
	urls   URLSource
	logger *slog.Logger
}

func NewHandler(source ProfileSource, urls URLSource, logger *slog.Logger) *Handler {
	return &Handler{source: source, urls: urls, logger: logger}
}

func (h *Handler) Handle(ctx context.Context, payload json.RawMessage) any {
	var req Request
	if err := json.Unmarshal(payload, &req); err != nil {
		h.logger.Error("undecodable request", "err", err)
		return newError("invalid request: %v", err)
	}

	h.logger.Info("request", "action", req.Action)

	switch req.Action {
	case "getProfiles":
		return h.getProfiles(ctx)
	case "enrichSSOProfiles":
		return h.enrichSSOProfiles(ctx, req.ProfileNames)
	case "openProfile":
		return h.openProfile(ctx, req)
	default:
		return newError("Unknown action: %s", req.Action)
	}
}

// getProfiles is the fast path: no SSO token validation, so the popup can
// render immediately. Token state arrives later via enrichSSOProfiles.
func (h *Handler) getProfiles(ctx context.Context) any {
	list, warnings := h.source.List(ctx, false)
	h.logger.Info("profiles listed", "count", len(list), "warnings", len(warnings))
	return profileListResponse{Action: "profileList", Profiles: list, Warnings: warnings}
}

// enrichSSOProfiles is the slow path: SSO token expiry is checked for the
// named profiles, or for all of them when no names are given.
func (h *Handler) enrichSSOProfiles(ctx context.Context, names []string) any {
	if len(names) == 0 {
		list, warnings := h.source.List(ctx, true)
		return profileListResponse{Action: "profileList", Profiles: list, Warnings: warnings}
	}

	wanted := make(map[string]struct{}, len(names))
	for _, n := range names {
		wanted[n] = struct{}{}
	}

	list, warnings := h.source.List(ctx, false)
	for i := range list {
		if _, ok := wanted[list[i].Name]; !ok || !list[i].IsSSO {
			continue
		}
		res, err := h.source.Resolve(ctx, list[i].Name)
		if err != nil {
			h.logger.Warn("enrichment failed", "profile", list[i].Name, "err", err)
			continue
		}
		list[i] = res.Profile
	}
	return profileListResponse{Action: "profileList", Profiles: list, Warnings: warnings}
}

func (h *Handler) openProfile(ctx context.Context, req Request) any {
	if req.ProfileName == "" {
		return newError("Missing profileName")
	}

	res, err := h.source.Resolve(ctx, req.ProfileName)
	if err != nil {
		if errors.Is(err, profiles.ErrProfileNotFound) {
			return newError("Unknown profile: %s", req.ProfileName)
		}
		return newError("Failed to resolve profile %s: %v", req.ProfileName, err)
	}

	url, err := h.urls.ConsoleURL(ctx, res, req.Region, req.Destination)
	if err != nil {
		h.logger.Error("console url generation failed",
			"profile", req.ProfileName,
			"credentialsUnavailable", errors.Is(err, console.ErrCredentialsUnavailable),
		)
		return newError("%v", err)
	}

	return consoleURLResponse{
		Action:      "consoleUrl",
		URL:         url,
		ProfileName: req.ProfileName,
		Color:       res.Profile.Color,
		Icon:        res.Profile.Icon,
	}
}
