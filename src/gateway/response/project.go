package response

import (
	"nftfactory/src/registry"
)

type Project struct {
	Submitter string `json:"submitter"`
	Details   string `json:"details"`
	Status    string `json:"status"`
	Approved  bool   `json:"approved"`
}

func ProjectToResponse(submitter registry.Address, project registry.Project) *Project {
	return &Project{
		Submitter: string(submitter),
		Details:   project.Details,
		Status:    project.Status.String(),
		Approved:  project.Status == registry.StatusApproved,
	}
}
