package get_reference

// ReferenceResponse справочные данные для формы и сетки
type ReferenceResponse struct {
	Spaces        []string             `json:"spaces"`
	StartSlots    []string             `json:"startSlots"` // "07:00" ... "21:30"
	EndSlots      []string             `json:"endSlots"`   // "07:30" ... "22:00"
	Departments   []DepartmentResponse `json:"departments"`
	OtherColor    string               `json:"otherColor"` // цвет отделов вне списка
	HorizonMonths int                  `json:"horizonMonths"`
}

// DepartmentResponse отдел из фиксированного списка
type DepartmentResponse struct {
	Name          string `json:"name"`
	Color         string `json:"color"`
	WindowMessage string `json:"windowMessage"`
}
