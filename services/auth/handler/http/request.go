package http

import (
	"github.com/piresc/swastha/internal/pkg/models"
	"github.com/piresc/swastha/internal/utils"
)

// otpRequestBody is the raw /otp/request payload
type otpRequestBody struct {
	Phone  string  `json:"phone"`
	Aadhar *string `json:"aadhar"`
}

func (b otpRequestBody) parse() (*models.OTPRequest, error) {
	phone, err := utils.NormalizePhone(b.Phone)
	if err != nil {
		return nil, err
	}

	req := &models.OTPRequest{Phone: phone}
	if b.Aadhar != nil {
		if err := utils.ValidateAadhar(*b.Aadhar); err != nil {
			return nil, err
		}
		req.Aadhar = *b.Aadhar
	}
	return req, nil
}

// verifyRequestBody is the raw /otp/verify payload. A missing role means worker.
type verifyRequestBody struct {
	Phone string  `json:"phone"`
	Code  string  `json:"code"`
	Role  *string `json:"role"`
}

func (b verifyRequestBody) parse() (*models.VerifyRequest, error) {
	phone, err := utils.NormalizePhone(b.Phone)
	if err != nil {
		return nil, err
	}
	if err := utils.ValidateOTPCode(b.Code); err != nil {
		return nil, err
	}

	role := models.DefaultRole
	if b.Role != nil {
		role, err = models.ParseRole(*b.Role)
		if err != nil {
			return nil, err
		}
	}

	return &models.VerifyRequest{Phone: phone, Code: b.Code, Role: role}, nil
}
