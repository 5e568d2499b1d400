package handler

import "tienda/internal/model"

// UsuarioPayload is the public view of a usuario. Token is set only on login.
type UsuarioPayload struct {
	ID            uint                  `json:"id"`
	Correo        string                `json:"correo"`
	Token         string                `json:"token,omitempty"`
	Rol           model.Role            `json:"rol"`
	Cliente       *ClientePayload       `json:"cliente,omitempty"`
	Administrador *AdministradorPayload `json:"administrador,omitempty"`
}

// ClientePayload is the cliente extension as nested in UsuarioPayload.
type ClientePayload struct {
	ID              uint    `json:"id"`
	UsuarioID       uint    `json:"usuario_id"`
	Nombres         string  `json:"nombres"`
	ApellidoPaterno string  `json:"apellidoPaterno"`
	ApellidoMaterno string  `json:"apellidoMaterno"`
	CI              string  `json:"ci"`
	Telefono        *string `json:"telefono"`
}

// AdministradorPayload is the administrador extension as nested in UsuarioPayload.
type AdministradorPayload struct {
	ID     uint   `json:"id"`
	Nombre string `json:"nombre"`
}

// ClienteResponse is the flat cliente view used by registration and /users/clientes.
type ClienteResponse struct {
	ID              uint    `json:"id"`
	Correo          string  `json:"correo"`
	Nombres         string  `json:"nombres"`
	ApellidoPaterno string  `json:"apellidoPaterno"`
	ApellidoMaterno string  `json:"apellidoMaterno"`
	CI              string  `json:"ci"`
	Telefono        *string `json:"telefono"`
}

// AdminResponse is the flat administrador view used by registration and /users/admins.
type AdminResponse struct {
	ID      uint   `json:"id"`
	Correo  string `json:"correo"`
	Nombres string `json:"nombres"`
}

func newUsuarioPayload(u *model.Usuario, token string) UsuarioPayload {
	p := UsuarioPayload{ID: u.ID, Correo: u.Correo, Token: token, Rol: u.Rol}
	if c := u.Cliente; c != nil {
		p.Cliente = &ClientePayload{
			ID:              c.ID,
			UsuarioID:       u.ID,
			Nombres:         c.Nombres,
			ApellidoPaterno: c.ApellidoPaterno,
			ApellidoMaterno: c.ApellidoMaterno,
			CI:              c.CI,
			Telefono:        c.Telefono,
		}
	}
	if a := u.Administrador; a != nil {
		p.Administrador = &AdministradorPayload{ID: a.ID, Nombre: a.Nombre}
	}
	return p
}

func newClienteResponse(u *model.Usuario) ClienteResponse {
	r := ClienteResponse{ID: u.ID, Correo: u.Correo}
	if c := u.Cliente; c != nil {
		r.Nombres = c.Nombres
		r.ApellidoPaterno = c.ApellidoPaterno
		r.ApellidoMaterno = c.ApellidoMaterno
		r.CI = c.CI
		r.Telefono = c.Telefono
	}
	return r
}

func newAdminResponse(u *model.Usuario) AdminResponse {
	r := AdminResponse{ID: u.ID, Correo: u.Correo}
	if a := u.Administrador; a != nil {
		r.Nombres = a.Nombre
	}
	return r
}

func mapSlice[T, R any](items []T, fn func(*T) R) []R {
	out := make([]R, 0, len(items))
	for i := range items {
		out = append(out, fn(&items[i]))
	}
	return out
}

func usuarioPayloads(us []model.Usuario) []UsuarioPayload {
	return mapSlice(us, func(u *model.Usuario) UsuarioPayload { return newUsuarioPayload(u, "") })
}
