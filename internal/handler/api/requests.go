package api

// EventsRequest selects an event window in vendor epoch milliseconds.
type EventsRequest struct {
	Since int64 `query:"since" validate:"required,gt=0"`
	Until int64 `query:"until" validate:"required,gtfield=Since"`
}

// RefreshEventRequest identifies one event to re-fetch.
type RefreshEventRequest struct {
	ID string `param:"id" validate:"required"`
}
