package constants

const (
	CountApplicationsByStatus = `
	SELECT track, status, COUNT(*) AS total
	FROM onboarding_applications
	GROUP BY track, status
	`

	CountRequestsByStatus = `
	SELECT status, COUNT(*) AS total
	FROM mentorship_requests
	GROUP BY status
	`

	CountRoadmaps = `
	SELECT COUNT(*) FROM learning_roadmaps
	`

	InsertPrincipalRole = `
	INSERT INTO role_assignments (id, principal_id, role, granted_by, created_at)
	SELECT $1, p.id, $2, NULL, NOW() FROM principals p WHERE p.email = $3
	ON CONFLICT (principal_id, role) DO NOTHING
	RETURNING principal_id
	`
)
