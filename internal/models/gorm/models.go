package gorm

// All returns every persisted model, in migration order.
func All() []interface{} {
	return []interface{}{
		&Principal{},
		&RoleAssignment{},
		&OnboardingApplication{},
		&ApplicationRevision{},
		&MentorshipRequest{},
		&LearningRoadmap{},
		&Milestone{},
		&MilestoneComment{},
	}
}
