package identity

// Each role's identity space is owned by a separate endpoint family on the
// user-management service. Adding a role is a table edit.
type roleEndpoints struct {
	Profile  string
	Validate string
}

var roles = map[string]roleEndpoints{
	"ADMIN":       {Profile: "/admins/profile", Validate: "/admins/validateAdminId/"},
	"DOCTOR":      {Profile: "/doctors/profile", Validate: "/doctors/validateDoctorId/"},
	"LABSTAFF":    {Profile: "/labstaffs/profile", Validate: "/labstaffs/validateLabStaffId/"},
	"PATIENT":     {Profile: "/patients/profile", Validate: "/patients/validatePatientId/"},
	"RADIOLOGIST": {Profile: "/radiologists/profile", Validate: "/radiologists/validateRadiologistId/"},
	"SUPERADMIN":  {Profile: "/superadmins/profile", Validate: "/superadmins/validateSuperAdminId/"},
}
