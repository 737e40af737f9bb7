// Package trello provides a read-only HTTP client for the Trello REST API.
//
// # Overview
//
// The client fetches the three collections the pricing workflow drills
// through: the member's boards, the lists of a board and the cards of a
// list. Each call maps to exactly one request; there are no retries and no
// pagination.
//
// # Endpoints
//
//	GET /members/me/boards    → []Board
//	GET /boards/{id}/lists    → []List
//	GET /lists/{id}/cards     → []Card (price 0, unchecked)
//
// The API key and token travel as the key and token query parameters.
//
// # Credentials
//
// Credentials are an explicit value handed to NewClient. They are not
// validated up front: a 401 or 403 response yields a *FetchError wrapping
// ErrAuth.
//
// # Errors
//
// Every failed fetch returns a *FetchError whose Reason is one of:
//
//   - network: the request never produced a response
//   - status:  a non-2xx response (401/403 also match ErrAuth)
//   - decode:  the body was not the expected JSON array
//
//	boards, err := client.FetchBoards(ctx)
//	if errors.Is(err, trello.ErrAuth) {
//		// ask for a new token
//	}
package trello
