package material

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	RefractiveIndex float32 // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float32) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// Scatter implements the Material interface for dielectric scattering.
// It always scatters, choosing between reflection and refraction with the
// Schlick reflectance as probability.
func (d *Dielectric) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	direction := rayIn.Direction
	reflected := reflect(direction, hit.Normal)

	var outwardNormal core.Vec3
	var refractionRatio, cosine float32
	if dDotN := direction.Dot(hit.Normal); dDotN > 0 {
		// Exiting the material (from glass to air)
		outwardNormal = hit.Normal.Negate()
		refractionRatio = d.RefractiveIndex
		cosine = d.RefractiveIndex * dDotN / direction.Length()
	} else {
		// Entering the material (from air to glass)
		outwardNormal = hit.Normal
		refractionRatio = 1.0 / d.RefractiveIndex
		cosine = -dDotN / direction.Length()
	}

	reflectProbability := float32(1.0) // total internal reflection
	refracted, canRefract := refractVector(direction, outwardNormal, refractionRatio)
	if canRefract {
		reflectProbability = Reflectance(cosine, d.RefractiveIndex)
	}

	scattered := core.NewRay(hit.Point, refracted)
	if sampler.Get1D() < reflectProbability {
		scattered = core.NewRay(hit.Point, reflected)
	}

	return ScatterResult{
		Scattered:   scattered,
		Attenuation: core.NewVec3(1.0, 1.0, 1.0),
	}, true
}

func (d *Dielectric) sealed() {}

// refractVector bends v through a surface with normal n using Snell's law.
// It returns false when the angle produces total internal reflection.
func refractVector(v, n core.Vec3, niOverNt float32) (core.Vec3, bool) {
	uv := v.Normalize()
	dt := uv.Dot(n)
	discriminant := 1 - niOverNt*niOverNt*(1-dt*dt)
	if discriminant <= 0 {
		return core.Vec3{}, false
	}
	return uv.Subtract(n.Multiply(dt)).Multiply(niOverNt).Subtract(n.Multiply(math32.Sqrt(discriminant))), true
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractiveIndex float32) float32 {
	r0 := (1 - refractiveIndex) / (1 + refractiveIndex)
	r0 = r0 * r0
	return r0 + (1-r0)*math32.Pow(1-cosine, 5)
}
