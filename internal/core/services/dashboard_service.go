package services

import (
	"fmt"

	"github.com/medora-health/portal-access-service/internal/core/domain"
	"github.com/medora-health/portal-access-service/internal/core/ports"
)

// PortalDashboardService composes the role-specific dashboard content.
// It is a static lookup: the tiles carry portal summary figures and the
// quick actions are dispatch entries the shell binds to navigation,
// modals, or stub notices. The composer does not validate targets.
type PortalDashboardService struct{}

var _ ports.DashboardService = (*PortalDashboardService)(nil)

func NewPortalDashboardService() *PortalDashboardService {
	return &PortalDashboardService{}
}

func (s *PortalDashboardService) Compose(role domain.Role) (*domain.Dashboard, error) {
	switch role {
	case domain.RoleSuperAdmin:
		return &domain.Dashboard{
			Title: "Admin Dashboard",
			Role:  role,
			Stats: []domain.StatTile{
				{Title: "Total Users", Value: "1,247", Icon: "users", Color: "blue"},
				{Title: "Active Sessions", Value: "89", Icon: "activity", Color: "green"},
				{Title: "System Health", Value: "98%", Icon: "shield", Color: "purple"},
				{Title: "Configurations", Value: "156", Icon: "settings", Color: "orange"},
			},
			QuickActions: []domain.QuickAction{
				{Title: "User Management", Icon: "users", Kind: domain.ActionStub},
				{Title: "System Settings", Icon: "settings", Kind: domain.ActionStub},
				{Title: "Nurse Assignment", Icon: "user-check", Kind: domain.ActionNavigate, Target: "/nurse-assignment"},
				{Title: "Doctor Availability", Icon: "calendar", Kind: domain.ActionNavigate, Target: "/doctor-availability"},
			},
		}, nil

	case domain.RoleDoctor:
		return &domain.Dashboard{
			Title: "Doctor Dashboard",
			Role:  role,
			Stats: []domain.StatTile{
				{Title: "Today's Appointments", Value: "8", Icon: "calendar", Color: "blue"},
				{Title: "Active Patients", Value: "156", Icon: "users", Color: "green"},
				{Title: "Pending Reports", Value: "12", Icon: "file-text", Color: "orange"},
				{Title: "Teleconsults", Value: "3", Icon: "video", Color: "purple"},
			},
			QuickActions: []domain.QuickAction{
				{Title: "View Schedule", Icon: "calendar", Kind: domain.ActionStub},
				{Title: "Patient Records", Icon: "file-text", Kind: domain.ActionStub},
				{Title: "Telemedicine", Icon: "video", Kind: domain.ActionStub},
				{Title: "Availability", Icon: "users", Kind: domain.ActionNavigate, Target: "/doctor-availability"},
			},
		}, nil

	case domain.RoleNurse:
		return &domain.Dashboard{
			Title: "Nurse Dashboard",
			Role:  role,
			Stats: []domain.StatTile{
				{Title: "Pending Tasks", Value: "7", Icon: "clipboard", Color: "blue"},
				{Title: "Patients Assigned", Value: "23", Icon: "user-check", Color: "green"},
				{Title: "Medications Due", Value: "5", Icon: "pill", Color: "orange"},
				{Title: "Vitals Recorded", Value: "18", Icon: "heart", Color: "red"},
			},
			QuickActions: []domain.QuickAction{
				{Title: "Daily Tasks", Icon: "clipboard", Kind: domain.ActionNavigate, Target: "/tasks"},
				{Title: "Record Vitals", Icon: "heart", Kind: domain.ActionStub},
				{Title: "Medication Admin", Icon: "pill", Kind: domain.ActionStub},
				{Title: "Doctor Assist", Icon: "user-check", Kind: domain.ActionNavigate, Target: "/nurse-assignment"},
			},
		}, nil

	case domain.RolePatient:
		return &domain.Dashboard{
			Title: "Patient Dashboard",
			Role:  role,
			Stats: []domain.StatTile{
				{Title: "Upcoming Appointments", Value: "2", Icon: "calendar", Color: "blue"},
				{Title: "Active Prescriptions", Value: "3", Icon: "pill", Color: "green"},
				{Title: "Medical Records", Value: "12", Icon: "file-text", Color: "purple"},
				{Title: "Test Results", Value: "5", Icon: "download", Color: "orange"},
			},
			QuickActions: []domain.QuickAction{
				{Title: "Book Appointment", Icon: "calendar", Kind: domain.ActionModal, Target: "booking"},
				{Title: "View Prescriptions", Icon: "pill", Kind: domain.ActionModal, Target: "prescriptions"},
				{Title: "Medical Records", Icon: "file-text", Kind: domain.ActionModal, Target: "records"},
				{Title: "Teleconsult", Icon: "phone", Kind: domain.ActionStub},
			},
		}, nil
	}
	return nil, fmt.Errorf("unsupported role %q", role)
}
