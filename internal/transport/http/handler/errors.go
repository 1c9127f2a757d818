package handler

const (
	errInternalServer     = "Internal server error"
	errInvalidID          = "Invalid id"
	errDomainNotFound     = "Domain not found"
	errInquiryNotFound    = "Inquiry not found"
	errInvalidStatus      = "Invalid status value"
	errInvalidPrice       = "Price must be a non-negative number"
	errInvalidRange       = "Range must be one of 7, 30 or 90"
	errInvalidCredentials = "Invalid email or password"
	errUserExists         = "User with this email already exists"
	errUnauthorized       = "Unauthorized"
)
