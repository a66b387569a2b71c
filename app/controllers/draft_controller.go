package controllers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/UrbanWatchHQ/BillboardWatch/internal/pkg/draft"
	"github.com/UrbanWatchHQ/BillboardWatch/internal/pkg/usercontext"
)

// HandleGetDraft returns the stored draft for the authenticated user,
// plus per-step completeness so the wizard can resume where it left off.
func HandleGetDraft(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication_missing", "message": "login required"})
	}

	d, err := reportDeps.Drafts.Load(c.UserContext(), userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load draft"})
	}
	if d == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "No draft in progress"})
	}

	return c.JSON(fiber.Map{
		"draft":    d,
		"steps":    stepStates(d),
		"complete": d.Complete(),
	})
}

// HandleSaveDraft accepts the latest draft state and schedules a
// debounced write. Rapid successive saves coalesce into one store write
// carrying the last state received.
func HandleSaveDraft(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication_missing", "message": "login required"})
	}

	var d draft.Draft
	if err := json.Unmarshal(c.Body(), &d); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_request", "message": "Draft payload is not valid JSON"})
	}

	reportDeps.Autosave.Schedule(userCtx.UserID, &d)

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"scheduled": true,
		"steps":     stepStates(&d),
		"complete":  d.Complete(),
	})
}

// HandleDeleteDraft discards the stored draft and any pending autosave.
func HandleDeleteDraft(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication_missing", "message": "login required"})
	}

	reportDeps.Autosave.Cancel(userCtx.UserID)
	if err := reportDeps.Drafts.Delete(c.UserContext(), userCtx.UserID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to delete draft"})
	}

	return c.JSON(fiber.Map{"success": true})
}

func stepStates(d *draft.Draft) fiber.Map {
	return fiber.Map{
		"image":      d.StepComplete(draft.StepImage),
		"location":   d.StepComplete(draft.StepLocation),
		"violations": d.StepComplete(draft.StepViolations),
		"evidence":   d.StepComplete(draft.StepEvidence),
		"contact":    d.StepComplete(draft.StepContact),
	}
}
