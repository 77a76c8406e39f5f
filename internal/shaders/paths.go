package shaders

const BackgroundFragmentPath = "background.frag.glsl"
const BackgroundVertexPath = "background.vert.glsl"
const PointFragmentPath = "point.frag.glsl"
const PointVertexPath = "point.vert.glsl"
