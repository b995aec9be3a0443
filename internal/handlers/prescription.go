// internal/handlers/prescription.go
package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/albanrr9/PharmacyOnline/internal/services"
	"github.com/albanrr9/PharmacyOnline/internal/utils"
)

type PrescriptionHandler struct {
	prescriptionService *services.PrescriptionService
	storageService      *services.StorageService
}

func NewPrescriptionHandler(prescriptionService *services.PrescriptionService, storageService *services.StorageService) *PrescriptionHandler {
	return &PrescriptionHandler{
		prescriptionService: prescriptionService,
		storageService:      storageService,
	}
}

// POST /v1/orders/:id/prescriptions
func (h *PrescriptionHandler) UploadPrescription(c *gin.Context) {
	customerID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	orderID, ok := parseIDParam(c)
	if !ok {
		return
	}

	header, err := c.FormFile("prescription")
	if err != nil {
		utils.BadRequestResponse(c, "No prescription file provided", err.Error())
		return
	}

	file, err := header.Open()
	if err != nil {
		utils.BadRequestResponse(c, "Failed to open uploaded file", err.Error())
		return
	}
	defer file.Close()

	if err := h.storageService.ValidateImage(file); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	options := h.storageService.GetDefaultUploadOptions("prescriptions")
	result, err := h.storageService.UploadFile(file, header, options)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	prescription, err := h.prescriptionService.AttachPrescription(orderID, customerID, result.URL)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "Order")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.CreatedResponse(c, gin.H{
		"prescription": prescription,
	})
}

// GET /v1/prescriptions/:id
func (h *PrescriptionHandler) GetPrescription(c *gin.Context) {
	callerID, callerRole, ok := callerFromContext(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	prescription, err := h.prescriptionService.GetPrescription(id, callerID, callerRole)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "Prescription")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	// Prescription objects are private in S3, so hand out a short-lived
	// presigned link. Local storage serves the stored URL directly.
	imageURL := prescription.ImageURL
	if key := h.storageService.KeyFromURL(imageURL); key != "" {
		if signed, err := h.storageService.GeneratePresignedURL(key, 15*time.Minute); err == nil {
			imageURL = signed
		}
	}

	utils.SuccessResponse(c, gin.H{
		"prescription": prescription,
		"image_url":    imageURL,
	})
}

// PUT /v1/prescriptions/:id/verify
func (h *PrescriptionHandler) VerifyPrescription(c *gin.Context) {
	adminID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req services.VerifyPrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	prescription, err := h.prescriptionService.VerifyPrescription(id, adminID, &req)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "not found"):
			utils.NotFoundResponse(c, "Prescription")
		case strings.Contains(err.Error(), "already been reviewed"):
			utils.ConflictResponse(c, err.Error())
		case strings.Contains(err.Error(), "validation failed"):
			utils.BadRequestResponse(c, err.Error(), nil)
		default:
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"prescription": prescription,
	})
}
