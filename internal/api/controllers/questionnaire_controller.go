package controllers

import (
	"net/http"
	"tripzy/internal/models/request_models"
	"tripzy/internal/services"
	"tripzy/pkg/utils"

	"github.com/gin-gonic/gin"
)

type QuestionnaireController struct {
	questionnaireService services.QuestionnaireServiceInterface
}

func NewQuestionnaireController(questionnaireService services.QuestionnaireServiceInterface) *QuestionnaireController {
	return &QuestionnaireController{
		questionnaireService: questionnaireService,
	}
}

// StartSessionHandler godoc
// @Summary Start a questionnaire session
// @Description Creates a session on step 1 with the default trip profile
// @Tags Questionnaire
// @Produce json
// @Success 201 {object} response_models.QuestionnaireSessionResponse
// @Router /questionnaire/sessions [post]
func (q *QuestionnaireController) StartSessionHandler(c *gin.Context) {
	session, err := q.questionnaireService.StartSession(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, session, "Questionnaire started")
}

// GetSessionHandler godoc
// @Summary Get a questionnaire session
// @Tags Questionnaire
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} response_models.QuestionnaireSessionResponse
// @Failure 404 {object} utils.APIResponse
// @Router /questionnaire/sessions/{sessionId} [get]
func (q *QuestionnaireController) GetSessionHandler(c *gin.Context) {
	session, err := q.questionnaireService.GetSession(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, session, "Questionnaire fetched")
}

// ApplyEditHandler godoc
// @Summary Apply an edit event
// @Description Applies one field edit to the session's trip profile. Rejected budget shares report applied=false.
// @Tags Questionnaire
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param request body request_models.EditEventRequest true "Edit event"
// @Success 200 {object} response_models.EditResultResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /questionnaire/sessions/{sessionId}/edits [post]
func (q *QuestionnaireController) ApplyEditHandler(c *gin.Context) {
	var req request_models.EditEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "field is required")
		return
	}
	if len(req.Value) == 0 {
		req.Value = []byte("null")
	}

	result, err := q.questionnaireService.ApplyEdit(c.Request.Context(), c.Param("sessionId"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	message := "Edit applied"
	if !result.Applied {
		message = "Edit ignored"
	}
	utils.RespondSuccess(c, result, message)
}

// AdvanceHandler godoc
// @Summary Go to the next step
// @Description On the last step this completes the questionnaire and hands the profile to the trip assistant.
// @Tags Questionnaire
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} response_models.TransitionResponse
// @Failure 404 {object} utils.APIResponse
// @Router /questionnaire/sessions/{sessionId}/advance [post]
func (q *QuestionnaireController) AdvanceHandler(c *gin.Context) {
	transition, err := q.questionnaireService.Advance(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, transition, "Questionnaire "+transition.Transition)
}

// RetreatHandler godoc
// @Summary Go to the previous step
// @Description On step 1 this abandons the questionnaire.
// @Tags Questionnaire
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} response_models.TransitionResponse
// @Failure 404 {object} utils.APIResponse
// @Router /questionnaire/sessions/{sessionId}/retreat [post]
func (q *QuestionnaireController) RetreatHandler(c *gin.Context) {
	transition, err := q.questionnaireService.Retreat(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, transition, "Questionnaire "+transition.Transition)
}

func (q *QuestionnaireController) VocabularyHandler(c *gin.Context) {
	utils.RespondSuccess(c, q.questionnaireService.Vocabulary(), "Vocabulary fetched")
}

// GET /questionnaire/locations?q=oo
func (q *QuestionnaireController) SuggestLocationsHandler(c *gin.Context) {
	utils.RespondSuccess(c, q.questionnaireService.SuggestLocations(c.Query("q")), "Locations fetched")
}
