package converter

import (
	"github.com/binzume/abc2gltf/abc"
	"github.com/binzume/abc2gltf/geom"
	"go.uber.org/zap"
)

// attributeScope maps a parameter scope to the output slot it occupies.
func attributeScope(s abc.Scope) (geom.AttributeScope, bool) {
	switch s {
	case abc.ScopeFacevarying:
		return geom.AttributeFaceVarying, true
	case abc.ScopeVertex, abc.ScopeVarying, abc.ScopeUniform, abc.ScopeConstant:
		return geom.AttributeUniform, true
	}
	return geom.AttributeAbsent, false
}

// ReadNormals reads the expanded normals at sel. An unbound parameter gives
// an absent attribute.
func ReadNormals(param abc.N3fParam, sel abc.SampleSelector, logger *zap.Logger) geom.Attribute {
	if param == nil {
		return geom.Attribute{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug("normals", zap.Stringer("scope", param.Scope()), zap.Int("samples", param.NumSamples()))

	scope, ok := attributeScope(param.Scope())
	if !ok {
		logger.Warn("unknown normal scope", zap.Int("scope", int(param.Scope())))
		return geom.Attribute{}
	}
	values, err := param.Expanded(sel)
	if err != nil {
		logger.Warn("failed to read normals", zap.Error(err))
		return geom.Attribute{}
	}
	return geom.Attribute{Scope: scope, Components: 3, Values: geom.Vector3Floats(values)}
}

// ReadUVs reads the UV value table at sel. Indices are not resolved.
func ReadUVs(param abc.V2fParam, sel abc.SampleSelector, logger *zap.Logger) geom.Attribute {
	if param == nil {
		return geom.Attribute{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug("uvs", zap.Stringer("scope", param.Scope()), zap.String("name", abc.SourceName(param.Metadata())))
	if param.IsConstant() {
		logger.Debug("UV is constant")
	}

	scope, ok := attributeScope(param.Scope())
	if !ok {
		logger.Warn("unknown uv scope", zap.Int("scope", int(param.Scope())))
		return geom.Attribute{}
	}
	values, _, err := param.Indexed(sel)
	if err != nil {
		logger.Warn("failed to read uvs", zap.Error(err))
		return geom.Attribute{}
	}
	return geom.Attribute{Scope: scope, Components: 2, Values: geom.Vector2Floats(values)}
}
