package model

// DockerHost is a configured Docker API endpoint Kuma can monitor
// containers against (used by the Docker monitor type's "docker_host"
// attribute).
type DockerHost struct {
	ID          *int64 `json:"id,omitempty"`
	Name        string `json:"name"`
	DockerDaemon string `json:"dockerDaemon"`
	DockerType  string `json:"dockerType"`
}

func (d *DockerHost) Equal(other *DockerHost) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.Name == other.Name && d.DockerDaemon == other.DockerDaemon && d.DockerType == other.DockerType
}
