package entity

type Tag struct {
	UID  string `json:"uid"`
	Name string `json:"name"`
}
