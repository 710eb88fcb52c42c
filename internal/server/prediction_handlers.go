package server

import (
	"errors"
	"strings"

	"pitchside/internal/models"
	"pitchside/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// predictionRequest is the payload for creating or replacing a prediction.
// Fields arrive as multipart form values alongside the optional picture file.
type predictionRequest struct {
	Match       string `json:"match" form:"match"`
	GoalsTeam1  int    `json:"goalsTeam1" form:"goalsTeam1"`
	GoalsTeam2  int    `json:"goalsTeam2" form:"goalsTeam2"`
	RedCards    int    `json:"redCards" form:"redCards"`
	YellowCards int    `json:"yellowCards" form:"yellowCards"`
	Penalties   int    `json:"penalties" form:"penalties"`
}

func (r *predictionRequest) validate() error {
	if strings.TrimSpace(r.Match) == "" {
		return errors.New("match is required")
	}
	if r.GoalsTeam1 < 0 || r.GoalsTeam2 < 0 {
		return errors.New("goals must be non-negative")
	}
	if r.RedCards < 0 || r.YellowCards < 0 || r.Penalties < 0 {
		return errors.New("cards and penalties must be non-negative")
	}
	return nil
}

func (r *predictionRequest) toModel(ownerID uint) *models.Prediction {
	return &models.Prediction{
		Match:       strings.TrimSpace(r.Match),
		GoalsTeam1:  r.GoalsTeam1,
		GoalsTeam2:  r.GoalsTeam2,
		RedCards:    r.RedCards,
		YellowCards: r.YellowCards,
		Penalties:   r.Penalties,
		CreatedBy:   ownerID,
	}
}

// GetPredictions handles GET /predictions. The listing is owner-scoped,
// paginated with a fixed page size and optionally narrowed by ?country=,
// a substring filter on the match field.
func (s *Server) GetPredictions(c *fiber.Ctx) error {
	userID := callerID(c)

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	country := strings.TrimSpace(c.Query("country"))
	offset := (page - 1) * predictionsPageSize

	predictions, total, err := s.predictionRepo.ListByOwner(
		c.UserContext(), userID, country, predictionsPageSize, offset)
	if err != nil {
		return models.NewInternalError(err, "Database doesn't work, try again later")
	}

	totalPages := int((total + predictionsPageSize - 1) / predictionsPageSize)

	return c.JSON(fiber.Map{
		"predictions":    predictions,
		"currentPage":    page,
		"totalPages":     totalPages,
		"isPreviousPage": page > 1,
		"isNextPage":     page < totalPages,
	})
}

// GetPredictionByID handles GET /predictions/:predictionId. Reads are
// owner-scoped: records belonging to other users are indistinguishable from
// missing ones.
func (s *Server) GetPredictionByID(c *fiber.Ctx) error {
	userID := callerID(c)

	id, err := s.parsePredictionID(c)
	if err != nil {
		return err
	}

	prediction, err := s.predictionRepo.GetByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.NewNotFoundError(err, "Prediction not found")
		}
		return models.NewInternalError(err, models.DefaultPublicMessage)
	}
	if prediction.CreatedBy != userID {
		return models.NewNotFoundError(
			errors.New("prediction belongs to another user"), "Prediction not found")
	}

	return c.JSON(prediction)
}

// CreatePrediction handles POST /predictions/create. The picture pipeline has
// already run; its results are picked up from the request locals.
func (s *Server) CreatePrediction(c *fiber.Ctx) error {
	userID := callerID(c)

	var req predictionRequest
	if err := c.BodyParser(&req); err != nil {
		return models.NewValidationError(err)
	}
	if err := req.validate(); err != nil {
		return models.NewValidationError(err)
	}

	exists, err := s.predictionRepo.ExistsForOwnerAndMatch(c.UserContext(), userID, strings.TrimSpace(req.Match))
	if err != nil {
		return models.NewInternalError(err, "Database doesn't work, try again later")
	}
	if exists {
		return models.NewConflictError(
			errors.New("duplicate prediction for match"), "Prediction already exists")
	}

	prediction := req.toModel(userID)
	prediction.Picture, prediction.BackupPicture = pictureFromLocals(c)

	if err := s.predictionRepo.Create(c.UserContext(), prediction); err != nil {
		// The composite unique index closes the race between the duplicate
		// check above and this insert.
		if errors.Is(err, repository.ErrDuplicate) {
			return models.NewConflictError(err, "Prediction already exists")
		}
		return models.NewBadRequestError(err, "Error creating the prediction")
	}

	return c.Status(fiber.StatusCreated).JSON(prediction)
}

// EditPrediction handles PATCH /predictions/update/:predictionId with
// full-replace semantics; only the owner may update a prediction.
func (s *Server) EditPrediction(c *fiber.Ctx) error {
	userID := callerID(c)

	id, err := s.parsePredictionID(c)
	if err != nil {
		return err
	}

	existing, err := s.predictionRepo.GetByID(c.UserContext(), id)
	if err != nil {
		return models.NewNotFoundError(err, "Prediction not found")
	}
	if existing.CreatedBy != userID {
		return models.NewBadRequestError(
			errors.New("prediction belongs to another user"),
			"You are not allowed to update this prediction")
	}

	var req predictionRequest
	if err := c.BodyParser(&req); err != nil {
		return models.NewValidationError(err)
	}
	if err := req.validate(); err != nil {
		return models.NewValidationError(err)
	}

	updated := req.toModel(userID)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	picture, backup := pictureFromLocals(c)
	if picture == "" {
		// No new upload: keep the stored picture references.
		picture, backup = existing.Picture, existing.BackupPicture
	}
	updated.Picture, updated.BackupPicture = picture, backup

	if err := s.predictionRepo.Update(c.UserContext(), updated); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return models.NewConflictError(err, "Prediction already exists")
		}
		return models.NewNotFoundError(err, "Prediction not found")
	}

	return c.JSON(updated)
}

// DeletePrediction handles DELETE /predictions/delete/:predictionId; only the
// owner may delete a prediction. The deleted record is echoed back.
func (s *Server) DeletePrediction(c *fiber.Ctx) error {
	userID := callerID(c)

	id, err := s.parsePredictionID(c)
	if err != nil {
		return err
	}

	prediction, err := s.predictionRepo.GetByID(c.UserContext(), id)
	if err != nil {
		return models.NewNotFoundError(err, "Prediction not found")
	}
	if prediction.CreatedBy != userID {
		return models.NewBadRequestError(
			errors.New("prediction belongs to another user"),
			"You are not allowed to delete this prediction")
	}

	if err := s.predictionRepo.Delete(c.UserContext(), id); err != nil {
		return models.NewNotFoundError(err, "Prediction not found")
	}

	return c.JSON(prediction)
}
