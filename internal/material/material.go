package material

// Template is an immutable, shared starting point for line materials.
type Template struct {
	Name    string
	Texture string
	Params  Params
}

// Material is one line's private copy of a Template. The copy is made on
// first write; until then nothing is pushed to the host.
//
// With DoNotOverwriteTemplate set, the first instantiation adopts the
// template's color, width and light saber factor instead of pushing the
// values stored on the material.
type Material struct {
	template  *Template
	host      Host
	keep      bool
	props     Params
	instance  *Params
	lineScale float64
}

// New returns a material bound to tmpl and host. props are the stored
// values pushed on instantiation unless keepTemplate is set.
func New(tmpl *Template, host Host, props Params, keepTemplate bool) *Material {
	return &Material{
		template:  tmpl,
		host:      host,
		keep:      keepTemplate,
		props:     props.Clamped(),
		lineScale: 1,
	}
}

// Template returns the template the material copies from.
func (m *Material) Template() *Template { return m.template }

// Instantiated reports whether the private copy exists.
func (m *Material) Instantiated() bool { return m.instance != nil }

// Instantiate makes the private copy if a template is set and none exists
// yet, then pushes all properties. It reports whether a copy exists.
func (m *Material) Instantiate() bool {
	if m.instance != nil {
		return true
	}
	if m.template == nil {
		return false
	}
	inst := m.template.Params
	if m.keep {
		m.props.Color = inst.Color
		m.props.Width = inst.Width
		m.props.LightSaber = inst.LightSaber
	}
	m.instance = &inst
	m.push()
	return true
}

// Refresh re-pushes every property, instantiating first if needed.
func (m *Material) Refresh() {
	if m.Instantiate() {
		m.push()
	}
}

func (m *Material) push() {
	*m.instance = m.props
	m.instance.Scale = m.lineScale
	Apply(m.host, *m.instance)
}

// Destroy drops the private copy. The next write instantiates again.
func (m *Material) Destroy() {
	m.instance = nil
}

// Params returns the stored parameters and the current line scale.
func (m *Material) Params() Params {
	p := m.props
	p.Scale = m.lineScale
	return p
}

// SetColor stores and forwards c. Without a template the call is ignored.
func (m *Material) SetColor(c Color) {
	if !m.Instantiate() {
		return
	}
	m.props.Color = c
	m.instance.Color = c
	if m.host != nil {
		m.host.SetColor(PropColor, c)
	}
}

// SetWidth stores and forwards the line width, clamped to be non-negative.
func (m *Material) SetWidth(w float64) {
	if !m.Instantiate() {
		return
	}
	m.props = Params{Color: m.props.Color, Width: w, LightSaber: m.props.LightSaber}.Clamped()
	m.instance.Width = m.props.Width
	if m.host != nil {
		m.host.SetFloat(PropLineWidth, m.props.Width)
	}
}

// SetLightSaber stores and forwards the light saber factor, clamped to [0,1].
func (m *Material) SetLightSaber(f float64) {
	if !m.Instantiate() {
		return
	}
	m.props = Params{Color: m.props.Color, Width: m.props.Width, LightSaber: f}.Clamped()
	m.instance.LightSaber = m.props.LightSaber
	if m.host != nil {
		m.host.SetFloat(PropLightSaber, m.props.LightSaber)
	}
}

// SetLineScale records the transform-derived width compensation and forwards
// it once the material exists.
func (m *Material) SetLineScale(s float64) {
	m.lineScale = s
	if m.instance == nil {
		return
	}
	m.instance.Scale = s
	if m.host != nil {
		m.host.SetFloat(PropLineScale, s)
	}
}
