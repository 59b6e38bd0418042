package api

// HTTP API endpoints
const (
	// Account endpoints
	AccountRegister = "/api/account/register"
	AccountLogin    = "/api/account/login"

	// ToDoItem endpoints
	ToDoItems          = "/api/todoitems"
	ToDoItemsCompleted = "/api/todoitems/completed"
	ToDoItemsPending   = "/api/todoitems/pending"
	ToDoItemsMetrics   = "/api/todoitems/metrics"
	ToDoItemByID       = "/api/todoitems/{id}"

	Health      = "/health"
	SwaggerDocs = "/swagger/*"
)
