package common

import "errors"

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// Directory errors
	ErrEventNotFound      = errors.New("event not found")
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrArtsGroupNotFound  = errors.New("arts group not found")

	// Newsletter errors
	ErrNewsletterNotFound = errors.New("newsletter not found")
	ErrBannerNotFound     = errors.New("banner not found")

	// Campaign errors
	ErrCampaignNotCreated    = errors.New("campaign has not been created")
	ErrCampaignAlreadySent   = errors.New("campaign already sent")
	ErrMissingSubject        = errors.New("subject line is required")
	ErrSubjectTooLong        = errors.New("subject line exceeds 60 characters")
	ErrNoRecipients          = errors.New("at least one list or segment is required")
	ErrEmptyRenderedHTML     = errors.New("rendered newsletter HTML is empty")
	ErrInvalidTestRecipients = errors.New("no valid test email address")

	// Auth errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Validation errors
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidToken    = errors.New("invalid token")
	ErrExpiredToken    = errors.New("expired token")
	ErrInvalidCursor   = errors.New("invalid pagination cursor")
	ErrSessionNotFound = errors.New("browse session not found")
)
