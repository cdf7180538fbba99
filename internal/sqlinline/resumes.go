package sqlinline

const QSelectResumeByUser = `--sql acbdf2c8-3da8-4c0f-837c-affa6409b9ac
select id, content, ats_score, feedback, created_at, updated_at
from resumes
where user_id = $1::uuid
limit 1;
`

const QUpsertResume = `--sql 119c394c-fb5a-495e-a2ca-774ea4a49a79
insert into resumes (user_id, content)
values ($1::uuid, $2)
on conflict (user_id) do update set
    content = excluded.content,
    updated_at = now()
returning id, content, ats_score, feedback, created_at, updated_at;
`
