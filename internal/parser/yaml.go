package parser

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mmcshane/usdt/internal/abi"
	"github.com/mmcshane/usdt/internal/model"
)

// yamlProvider and yamlProbe mirror the on-disk shape of the inline
// declarative form: a structure equivalent to the normalized shape,
// additionally able to name a serializable-compound type by an opaque
// application-level name.
//
//	name: test
//	module: test_mod   # optional, defaults to name
//	probes:
//	  - name: start
//	    params:
//	      - type: uint8_t
//	      - name: arg
//	        type: "!Arg"   # leading '!' marks a serializable compound
type yamlProvider struct {
	Name   string      `yaml:"name"`
	Module string      `yaml:"module"`
	Probes []yamlProbe `yaml:"probes"`
}

type yamlProbe struct {
	Name   string      `yaml:"name"`
	Params []yamlParam `yaml:"params"`
}

type yamlParam struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// ParseInline parses the YAML inline declarative form into the same
// normalized model.Provider shape ParseDScript produces. Every
// serializable-compound parameter (a type name prefixed with "!") is
// preserved as model.Compound with its application-level TypeName; whether
// that name is actually resolvable at the firing site is the caller's
// responsibility. This implementation validates only that the name is
// syntactically a legal Go identifier or a qualified "pkg.Type" spelling,
// see resolveParam and isQualifiedTypeName.
func ParseInline(source []byte) (model.Provider, error) {
	var y yamlProvider
	if err := yaml.Unmarshal(source, &y); err != nil {
		return model.Provider{}, errors.Wrap(err, "usdt: invalid inline provider declaration")
	}

	prov := model.Provider{Name: y.Name, Module: y.Module}
	for _, yp := range y.Probes {
		probe := model.Probe{Name: yp.Name}
		for _, param := range yp.Params {
			p, err := resolveParam(param)
			if err != nil {
				return model.Provider{}, err
			}
			probe.Params = append(probe.Params, p)
		}
		if err := abi.CheckArity(len(probe.Params)); err != nil {
			return model.Provider{}, err
		}
		prov.Probes = append(prov.Probes, probe)
	}

	if err := prov.Validate(); err != nil {
		return model.Provider{}, err
	}
	return prov, nil
}

func resolveParam(param yamlParam) (model.Param, error) {
	if len(param.Type) > 0 && param.Type[0] == '!' {
		typeName := param.Type[1:]
		if !model.ValidIdent(typeName) && !isQualifiedTypeName(typeName) {
			return model.Param{}, &UnknownTypeError{Name: param.Type}
		}
		return model.Param{Name: param.Name, Type: model.Compound, TypeName: typeName}, nil
	}
	dt, ok := abi.Lookup(param.Type)
	if !ok {
		return model.Param{}, &UnknownTypeError{Name: param.Type}
	}
	return model.Param{Name: param.Name, Type: dt}, nil
}

// isQualifiedTypeName allows the common "pkg.Type" spelling for a
// serializable-compound application type, e.g. "!net.IP".
func isQualifiedTypeName(name string) bool {
	for i, r := range name {
		if r == '.' {
			return model.ValidIdent(name[:i]) && model.ValidIdent(name[i+1:])
		}
	}
	return false
}
