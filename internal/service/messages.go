package service

import "errors"

// Textos de los avisos que muestran la web y la CLI.
const (
	MsgLoginSuccess       = "Login successful!"
	MsgLoginFailed        = "Login failed: "
	MsgLoggedOut          = "Logged out."
	MsgProductAdded       = "Product added successfully!"
	MsgProductUpdated     = "Product updated successfully!"
	MsgProductDeleted     = "The product has been deleted."
	MsgProductSaveFailed  = "Failed to save the product: "
	MsgProductDelFailed   = "Failed to delete the product: "
	MsgProductFetchFailed = "Error fetching product: "
	MsgProductsEmpty      = "No products available."
	MsgCategoriesFailed   = "Error fetching categories. Please try again later."
	MsgCategoryCreated    = "The category has been created."
	MsgCategoryUpdated    = "The category has been updated."
	MsgCategoryDeleted    = "The category has been deleted."
	MsgCategorySaveFailed = "Failed to save the category: "
	MsgDeleteConfirmTitle = "Are you sure?"
	MsgDeleteConfirmText  = "You won't be able to revert this!"
)

var userMessages = map[error]string{
	ErrCategoryRequired:     "Please select a category.",
	ErrInvalidPrice:         "Price must be a positive number.",
	ErrTitleRequired:        "Please enter a title.",
	ErrCategoryNameRequired: "Category name is required.",
	ErrCredentialsRequired:  "Email and password are required.",
	ErrInvalidCredentials:   "Invalid login credentials",
	ErrUnauthorized:         "You must be logged in to do that.",
}

// UserMessage traduce un error a texto para el usuario. Los errores del
// servicio remoto se muestran tal cual.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	for sentinel, msg := range userMessages {
		if errors.Is(err, sentinel) {
			return msg
		}
	}
	return err.Error()
}
