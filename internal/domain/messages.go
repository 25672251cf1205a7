package domain

// SolverMessage travels over the solver queue from the API to the solve
// worker. Cancellation does not go through the queue, since a solving worker
// would not see it in time; it travels through a redis flag the engine polls.
type SolverMessage struct {
	Type     string `json:"type"`
	TenantID int64  `json:"tenantID"`
}

const SolverMessageSolve = "solve"

// NotificationQueue is the RabbitMQ queue carrying MailMessages to the
// notifier worker.
const NotificationQueue = "notification_queue"

// MailMessage travels over the notification queue to the notifier worker.
type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type RosterPublishedMailData struct {
	EmployeeName string `json:"employeeName"`
	TenantName   string `json:"tenantName"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
}
