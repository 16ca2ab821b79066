package domain

// DashboardStats summarises the projects and tasks visible to the current
// user. Computed client-side from the two listings, as the API exposes no
// aggregate endpoint.
type DashboardStats struct {
	TotalProjects   int
	TotalTasks      int
	TodoTasks       int
	InProgressTasks int
	DoneTasks       int
	OverdueTasks    int
}
