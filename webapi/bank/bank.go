package bank

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/zenbank/banking/pkg/config"
	"github.com/zenbank/banking/pkg/dto"
	"github.com/zenbank/banking/pkg/middleware"
	authsvc "github.com/zenbank/banking/pkg/service/auth"
	banksvc "github.com/zenbank/banking/pkg/service/bank"
	"github.com/zenbank/banking/webapi/common"
)

// Routes registers the bank and branch endpoints. Listing is public;
// every mutation requires an admin token.
//
// Routes:
//   - GET    /banks               : List all banks (public).
//   - GET    /banks/:id/branches  : List a bank's branches (public).
//   - POST   /banks               : Create a bank (admin).
//   - PUT    /banks/:id           : Rename a bank (admin).
//   - DELETE /banks/:id           : Delete a bank (admin).
//   - POST   /banks/:id/branches  : Create a branch (admin).
//   - PUT    /branches/:id        : Update a branch (admin).
//   - DELETE /branches/:id        : Delete a branch (admin).
func Routes(app *fiber.App, bankSvc *banksvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Jwt)
	adminOnly := middleware.RequireAdmin(authSvc)
	app.Get("/banks", ListBanks(bankSvc))
	app.Get("/banks/:id/branches", ListBranches(bankSvc))
	app.Post("/banks", protected, adminOnly, CreateBank(bankSvc))
	app.Put("/banks/:id", protected, adminOnly, UpdateBank(bankSvc))
	app.Delete("/banks/:id", protected, adminOnly, DeleteBank(bankSvc))
	app.Post("/banks/:id/branches", protected, adminOnly, CreateBranch(bankSvc))
	app.Put("/branches/:id", protected, adminOnly, UpdateBranch(bankSvc))
	app.Delete("/branches/:id", protected, adminOnly, DeleteBranch(bankSvc))
}

// ListBanks returns all banks.
// @Summary List banks
// @Tags banks
// @Produce json
// @Success 200 {object} common.Response
// @Failure 429 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /banks [get]
func ListBanks(bankSvc *banksvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		banks, err := bankSvc.ListBanks(c.Context())
		if err != nil {
			log.Errorf("Failed to list banks: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to list banks", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Banks retrieved", banks)
	}
}

// ListBranches returns the branches of a bank.
// @Summary List a bank's branches
// @Tags banks
// @Produce json
// @Param id path string true "Bank ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /banks/{id}/branches [get]
func ListBranches(bankSvc *banksvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		bankID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid bank ID", err, fiber.StatusBadRequest)
		}
		branches, err := bankSvc.ListBranches(c.Context(), bankID)
		if err != nil {
			log.Errorf("Failed to list branches: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to list branches", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Branches retrieved", branches)
	}
}

// CreateBank creates a new bank.
// @Summary Create a bank
// @Tags banks
// @Accept json
// @Produce json
// @Param request body CreateBankRequest true "Bank details"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /banks [post]
// @Security Bearer
func CreateBank(bankSvc *banksvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateBankRequest](c)
		if input == nil {
			return err // error response already written
		}
		b, err := bankSvc.CreateBank(c.Context(), input.Name)
		if err != nil {
			log.Errorf("Failed to create bank: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to create bank", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Bank created", b)
	}
}

// UpdateBank renames a bank.
// @Summary Rename a bank
// @Tags banks
// @Accept json
// @Produce json
// @Param id path string true "Bank ID"
// @Param request body UpdateBankRequest true "New name"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /banks/{id} [put]
// @Security Bearer
func UpdateBank(bankSvc *banksvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		bankID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid bank ID", err, fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[UpdateBankRequest](c)
		if input == nil {
			return err // error response already written
		}
		if err = bankSvc.RenameBank(c.Context(), bankID, input.Name); err != nil {
			log.Errorf("Failed to rename bank: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to rename bank", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Bank updated", nil)
	}
}

// DeleteBank removes a bank.
// @Summary Delete a bank
// @Tags banks
// @Produce json
// @Param id path string true "Bank ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /banks/{id} [delete]
// @Security Bearer
func DeleteBank(bankSvc *banksvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		bankID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid bank ID", err, fiber.StatusBadRequest)
		}
		if err = bankSvc.DeleteBank(c.Context(), bankID); err != nil {
			log.Errorf("Failed to delete bank: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to delete bank", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Bank deleted", nil)
	}
}

// CreateBranch creates a branch under a bank.
// @Summary Create a branch
// @Tags banks
// @Accept json
// @Produce json
// @Param id path string true "Bank ID"
// @Param request body CreateBranchRequest true "Branch details"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /banks/{id}/branches [post]
// @Security Bearer
func CreateBranch(bankSvc *banksvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		bankID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid bank ID", err, fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[CreateBranchRequest](c)
		if input == nil {
			return err // error response already written
		}
		br, err := bankSvc.CreateBranch(c.Context(), input.Name, input.Address, bankID)
		if err != nil {
			log.Errorf("Failed to create branch: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to create branch", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Branch created", br)
	}
}

// UpdateBranch updates a branch's name and/or address.
// @Summary Update a branch
// @Tags banks
// @Accept json
// @Produce json
// @Param id path string true "Branch ID"
// @Param request body UpdateBranchRequest true "Fields to update"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /branches/{id} [put]
// @Security Bearer
func UpdateBranch(bankSvc *banksvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		branchID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid branch ID", err, fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[UpdateBranchRequest](c)
		if input == nil {
			return err // error response already written
		}
		if input.Name == nil && input.Address == nil {
			return common.ProblemDetailsJSON(
				c, "Nothing to update", nil,
				"Provide a name or an address", fiber.StatusBadRequest)
		}
		update := dto.BranchUpdate{Name: input.Name, Address: input.Address}
		if err = bankSvc.UpdateBranch(c.Context(), branchID, update); err != nil {
			log.Errorf("Failed to update branch: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to update branch", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Branch updated", nil)
	}
}

// DeleteBranch removes a branch.
// @Summary Delete a branch
// @Tags banks
// @Produce json
// @Param id path string true "Branch ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /branches/{id} [delete]
// @Security Bearer
func DeleteBranch(bankSvc *banksvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		branchID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid branch ID", err, fiber.StatusBadRequest)
		}
		if err = bankSvc.DeleteBranch(c.Context(), branchID); err != nil {
			log.Errorf("Failed to delete branch: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to delete branch", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Branch deleted", nil)
	}
}
