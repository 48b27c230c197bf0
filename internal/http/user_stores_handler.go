package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"shopd/internal/auth"
	"shopd/internal/domain"
	"shopd/internal/repository"
	"shopd/internal/service"

	"go.uber.org/zap"
)

// UserStoresHandler manages the user↔store association table, its two
// membership views and the add-customer operation.
type UserStoresHandler struct {
	base
	repo   repository.UserStoresRepository
	users  repository.UsersRepository
	access *service.Access
}

func NewUserStoresHandler(repo repository.UserStoresRepository, users repository.UsersRepository, access *service.Access, logger *zap.Logger, env string) *UserStoresHandler {
	return &UserStoresHandler{base: base{logger: logger, env: env}, repo: repo, users: users, access: access}
}

func (h *UserStoresHandler) Collection(w http.ResponseWriter, r *http.Request) {
	p, ok := PrincipalFrom(r.Context())
	if !ok {
		h.fail(w, r, domain.ErrUnauthenticated)
		return
	}

	switch r.Method {
	case http.MethodGet:
		userID, err := queryID(r, "user_id")
		if err != nil {
			h.badRequest(w, "invalid user_id")
			return
		}
		storeID, err := queryID(r, "store_id")
		if err != nil {
			h.badRequest(w, "invalid store_id")
			return
		}

		if p.Role != domain.RolePlatformAdmin {
			if userID != nil && *userID != p.UserID {
				h.fail(w, r, domain.ErrForbidden)
				return
			}
			if storeID != nil {
				if err := h.access.CanAccessStore(r.Context(), p, *storeID); err != nil {
					h.fail(w, r, err)
					return
				}
			}
			if userID == nil && storeID == nil {
				userID = &p.UserID
			}
		}

		userStores, err := h.repo.List(r.Context(), repository.UserStoreFilters{UserID: userID, StoreID: storeID})
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(map[string]any{"userStores": userStores}))

	case http.MethodPost:
		h.associate(w, r, p)

	default:
		methodNotAllowed(w)
	}
}

func (h *UserStoresHandler) associate(w http.ResponseWriter, r *http.Request, p service.Principal) {
	var req struct {
		UserID  int64  `json:"user_id"`
		StoreID int64  `json:"store_id"`
		Status  string `json:"status"`
	}
	if err := readBodyJSON(r, &req); err != nil {
		h.badRequest(w, "invalid body")
		return
	}
	var errs fieldErrors
	if req.UserID <= 0 {
		errs.add("user_id is required")
	}
	if req.StoreID <= 0 {
		errs.add("store_id is required")
	}
	if req.Status != "" && !domain.ValidUserStoreStatus(req.Status) {
		errs.add("status must be one of active, inactive, suspended")
	}
	if err := errs.err(); err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.access.CanAccessStore(r.Context(), p, req.StoreID); err != nil {
		h.fail(w, r, err)
		return
	}
	user, err := h.users.GetByID(r.Context(), req.UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if p.Role != domain.RolePlatformAdmin && user.CompanyID != p.CompanyID {
		h.fail(w, r, domain.ErrForbidden)
		return
	}

	if _, err := h.repo.FindByUserAndStore(r.Context(), req.UserID, req.StoreID); err == nil {
		h.badRequest(w, "user is already associated with this store")
		return
	} else if !errors.Is(err, domain.ErrNotFound) {
		h.fail(w, r, err)
		return
	}

	status := req.Status
	if status == "" {
		status = domain.UserStoreActive
	}
	us := &domain.UserStore{UserID: req.UserID, StoreID: req.StoreID, Status: status}
	id, err := h.repo.Create(r.Context(), us)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	created, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, OkMessage("user associated with store", map[string]any{"userStore": created}))
}

func (h *UserStoresHandler) Item(w http.ResponseWriter, r *http.Request) {
	p, ok := PrincipalFrom(r.Context())
	if !ok {
		h.fail(w, r, domain.ErrUnauthenticated)
		return
	}
	id, ok := pathID(r.URL.Path, "/user-stores/")
	if !ok {
		writeJSON(w, http.StatusNotFound, Fail("association not found"))
		return
	}

	if _, err := h.access.CanAccessUserStore(r.Context(), p, id); err != nil {
		h.fail(w, r, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		us, err := h.repo.GetByID(r.Context(), id)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(map[string]any{"userStore": us}))

	case http.MethodPut:
		var req struct {
			Status string `json:"status"`
		}
		if err := readBodyJSON(r, &req); err != nil {
			h.badRequest(w, "invalid body")
			return
		}
		if !domain.ValidUserStoreStatus(req.Status) {
			h.fail(w, r, domain.NewValidationError("status must be one of active, inactive, suspended"))
			return
		}
		if err := h.repo.UpdateStatus(r.Context(), id, req.Status); err != nil {
			h.fail(w, r, err)
			return
		}
		us, err := h.repo.GetByID(r.Context(), id)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, OkMessage("association updated", map[string]any{"userStore": us}))

	case http.MethodDelete:
		if err := h.repo.Delete(r.Context(), id); err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, OkMessage("association removed", nil))

	default:
		methodNotAllowed(w)
	}
}

// StoresByUser serves GET /user-stores/user/{user_id}.
func (h *UserStoresHandler) StoresByUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	p, ok := PrincipalFrom(r.Context())
	if !ok {
		h.fail(w, r, domain.ErrUnauthenticated)
		return
	}
	userID, ok := pathID(r.URL.Path, "/user-stores/user/")
	if !ok {
		writeJSON(w, http.StatusNotFound, Fail("user not found"))
		return
	}
	if p.Role != domain.RolePlatformAdmin && userID != p.UserID {
		h.fail(w, r, domain.ErrForbidden)
		return
	}

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	stores, err := h.repo.ListStoresByUser(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"user": user, "stores": stores}))
}

// UsersByStore serves GET /user-stores/store/{store_id}.
func (h *UserStoresHandler) UsersByStore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	p, ok := PrincipalFrom(r.Context())
	if !ok {
		h.fail(w, r, domain.ErrUnauthenticated)
		return
	}
	storeID, ok := pathID(r.URL.Path, "/user-stores/store/")
	if !ok {
		writeJSON(w, http.StatusNotFound, Fail("store not found"))
		return
	}
	if err := h.access.CanAccessStore(r.Context(), p, storeID); err != nil {
		h.fail(w, r, err)
		return
	}

	users, err := h.repo.ListUsersByStore(r.Context(), storeID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"users": users}))
}

type addCustomerRequest struct {
	StoreID   int64  `json:"store_id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Password  string `json:"password"`
	CompanyID int64  `json:"company_id"`
}

// AddCustomer attaches a customer account to a store, creating the account
// when it does not exist yet. The operation is idempotent: a repeat call
// returns the existing association, reactivating it when it was inactive or
// suspended.
func (h *UserStoresHandler) AddCustomer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	p, ok := PrincipalFrom(r.Context())
	if !ok {
		h.fail(w, r, domain.ErrUnauthenticated)
		return
	}

	var req addCustomerRequest
	if err := readBodyJSON(r, &req); err != nil {
		h.badRequest(w, "invalid body")
		return
	}
	var errs fieldErrors
	if req.StoreID <= 0 {
		errs.add("store_id is required")
	}
	if !validEmail(req.Email) {
		errs.add("a valid email is required")
	}
	if err := errs.err(); err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.access.CanAccessStore(r.Context(), p, req.StoreID); err != nil {
		h.fail(w, r, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := h.users.GetByEmail(r.Context(), email)
	userCreated := false
	switch {
	case err == nil:
		if p.Role != domain.RolePlatformAdmin && user.CompanyID != p.CompanyID {
			h.fail(w, r, domain.ErrForbidden)
			return
		}
		if req.Name != "" && req.Name != user.Name {
			name := req.Name
			if uerr := h.users.Update(r.Context(), user.ID, repository.UserUpdate{Name: &name}); uerr != nil {
				h.fail(w, r, uerr)
				return
			}
			user.Name = name
		}

	case errors.Is(err, domain.ErrNotFound):
		if req.Password == "" {
			h.fail(w, r, domain.NewValidationError("password is required when the user does not exist"))
			return
		}
		if len(req.Password) < auth.MinPasswordLength {
			h.fail(w, r, domain.NewValidationError("password must be at least 6 characters"))
			return
		}
		companyID := p.CompanyID
		if p.Role == domain.RolePlatformAdmin {
			if req.CompanyID <= 0 {
				h.fail(w, r, domain.NewValidationError("company_id is required when a platform admin creates the user"))
				return
			}
			companyID = req.CompanyID
		}
		name := req.Name
		if name == "" {
			name = strings.SplitN(email, "@", 2)[0]
		}
		hash, herr := auth.HashPassword(req.Password)
		if herr != nil {
			h.fail(w, r, herr)
			return
		}
		user = &domain.User{
			CompanyID:    companyID,
			Name:         name,
			Email:        email,
			PasswordHash: hash,
			Role:         domain.RoleCustomer,
		}
		if _, cerr := h.users.Create(r.Context(), user); cerr != nil {
			h.fail(w, r, cerr)
			return
		}
		userCreated = true
		h.logger.Info("customer account created", zap.Int64("user_id", user.ID), zap.Int64("store_id", req.StoreID))

	default:
		h.fail(w, r, err)
		return
	}

	existing, err := h.repo.FindByUserAndStore(r.Context(), user.ID, req.StoreID)
	if err == nil {
		if existing.Status != domain.UserStoreActive {
			if uerr := h.repo.UpdateStatus(r.Context(), existing.ID, domain.UserStoreActive); uerr != nil {
				h.fail(w, r, uerr)
				return
			}
			existing.Status = domain.UserStoreActive
		}
		writeJSON(w, http.StatusOK, OkMessage("user was already associated with this store", map[string]any{
			"userStore":   existing,
			"userCreated": userCreated,
		}))
		return
	}
	if !errors.Is(err, domain.ErrNotFound) {
		h.fail(w, r, err)
		return
	}

	us := &domain.UserStore{UserID: user.ID, StoreID: req.StoreID, Status: domain.UserStoreActive}
	id, err := h.repo.Create(r.Context(), us)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	created, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	message := "customer added to store"
	if userCreated {
		message = "customer account created and added to store"
	}
	writeJSON(w, http.StatusCreated, OkMessage(message, map[string]any{
		"userStore":   created,
		"userCreated": userCreated,
	}))
}
