// Package utils provides input validation for API-facing fields.
//
// Validation:
//   - String length and null-byte checks
//   - ID format validation (alphanumeric, hyphens, underscores)
//   - Field-specific helpers for names, paths, arguments, descriptions
//
// Features:
//   - Consistent error messages
//   - Configurable limits
//
// Example Usage:
//
//	if err := utils.ValidateID(appID, "app_id", true); err != nil {
//		return err
//	}
package utils
